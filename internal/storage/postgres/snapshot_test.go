package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/config"
	"github.com/cory-johannsen/apothecary/internal/game/dice"
	"github.com/cory-johannsen/apothecary/internal/game/profession"
	"github.com/cory-johannsen/apothecary/internal/game/progression"
	"github.com/cory-johannsen/apothecary/internal/game/quest"
	"github.com/cory-johannsen/apothecary/internal/game/session"
	"github.com/cory-johannsen/apothecary/internal/storage/postgres"
	"github.com/cory-johannsen/apothecary/internal/testutil"
)

func setupSnapshotRepo(t *testing.T) *postgres.SnapshotRepository {
	t.Helper()
	return postgres.NewSnapshotRepository(testutil.NewPool(t))
}

func makeTestSession(t *testing.T, player string) *session.Session {
	t.Helper()
	c, err := profession.LoadDefault()
	require.NoError(t, err)
	rules := progression.NewRuleset(config.Default().Rules, c, dice.NewSeededSource(3), zap.NewNop())
	s := session.New(uuid.New(), player, rules, zap.NewNop())
	s.Progression.AwardXP("anatomy", 260)
	require.True(t, s.Progression.ChooseProfession(profession.Surgeon))
	require.True(t, s.ProposeQuest(quest.Quest{ID: "q1", TemplateID: "leeches", Title: "Fresh Leeches"}))
	require.True(t, s.ProposeQuest(quest.Quest{ID: "q2", TemplateID: "herbs", Data: map[string]string{"npc": "miller"}}))
	s.EndTurn()
	require.True(t, s.CompleteQuest("q1"))
	return s
}

func TestSnapshotRepository_SaveAndLoad(t *testing.T) {
	repo := setupSnapshotRepo(t)
	ctx := context.Background()
	snap := makeTestSession(t, "Wren").Snapshot()

	require.NoError(t, repo.Save(ctx, snap))
	got, err := repo.Load(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestSnapshotRepository_SaveOverwrites(t *testing.T) {
	repo := setupSnapshotRepo(t)
	ctx := context.Background()
	s := makeTestSession(t, "Wren")
	require.NoError(t, repo.Save(ctx, s.Snapshot()))

	s.EndTurn()
	require.True(t, s.FailQuest("q2"))
	require.NoError(t, repo.Save(ctx, s.Snapshot()))

	got, err := repo.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Turn)
	assert.Len(t, got.Quests.Failed, 1)
	assert.Empty(t, got.Quests.Active)
}

func TestSnapshotRepository_LoadLatestForPlayer(t *testing.T) {
	repo := setupSnapshotRepo(t)
	ctx := context.Background()
	first := makeTestSession(t, "Wren").Snapshot()
	second := makeTestSession(t, "Wren").Snapshot()
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.LoadLatestForPlayer(ctx, "Wren")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	_, err = repo.LoadLatestForPlayer(ctx, "nobody")
	assert.True(t, errors.Is(err, postgres.ErrSnapshotNotFound))
}

func TestSnapshotRepository_Delete(t *testing.T) {
	repo := setupSnapshotRepo(t)
	ctx := context.Background()
	snap := makeTestSession(t, "Wren").Snapshot()
	require.NoError(t, repo.Save(ctx, snap))

	require.NoError(t, repo.Delete(ctx, snap.ID))
	_, err := repo.Load(ctx, snap.ID)
	assert.True(t, errors.Is(err, postgres.ErrSnapshotNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, snap.ID), postgres.ErrSnapshotNotFound))
}

func TestSnapshotRepository_SaveRejectsNilID(t *testing.T) {
	repo := postgres.NewSnapshotRepository(nil)
	assert.Error(t, repo.Save(context.Background(), session.Snapshot{}))
}

func TestSnapshot_RestoresIntoSession(t *testing.T) {
	repo := setupSnapshotRepo(t)
	ctx := context.Background()
	orig := makeTestSession(t, "Wren")
	require.NoError(t, repo.Save(ctx, orig.Snapshot()))

	got, err := repo.Load(ctx, orig.ID)
	require.NoError(t, err)
	c, err := profession.LoadDefault()
	require.NoError(t, err)
	rules := progression.NewRuleset(config.Default().Rules, c, dice.NewSeededSource(3), zap.NewNop())
	restored := session.Restore(got, rules, zap.NewNop())

	assert.Equal(t, orig.Progression.Title(), restored.Progression.Title())
	assert.Equal(t, "Surgeon", restored.Progression.Title())
	assert.False(t, restored.TemplateReady("leeches"))
}
