// Package main replays a scripted play session through the progression
// engine and reports the resulting player state.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/config"
	"github.com/cory-johannsen/apothecary/internal/game/dice"
	"github.com/cory-johannsen/apothecary/internal/game/profession"
	"github.com/cory-johannsen/apothecary/internal/game/progression"
	"github.com/cory-johannsen/apothecary/internal/game/session"
	"github.com/cory-johannsen/apothecary/internal/observability"
	"github.com/cory-johannsen/apothecary/internal/replay"
	"github.com/cory-johannsen/apothecary/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	professionsDir := flag.String("professions", "", "profession YAML directory (overrides rules.professions_dir)")
	scriptPath := flag.String("script", "scripts/surgeon.yaml", "path to replay script")
	seed := flag.Uint64("seed", 0, "dice seed for a reproducible replay (0 = crypto random)")
	persist := flag.Bool("persist", false, "save the final snapshot to PostgreSQL")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger("simulate", cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	dir := cfg.Rules.ProfessionsDir
	if *professionsDir != "" {
		dir = *professionsDir
	}
	catalog, err := loadCatalog(dir)
	if err != nil {
		logger.Fatal("loading professions", zap.Error(err))
	}
	logger.Info("professions loaded",
		zap.Int("count", catalog.Len()),
		zap.String("source", sourceName(dir)),
	)

	script, err := replay.LoadFile(*scriptPath)
	if err != nil {
		logger.Fatal("loading script", zap.Error(err))
	}

	var src dice.Source = dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	rules := progression.NewRuleset(cfg.Rules, catalog, src, logger)
	for _, p := range rules.Catalog().All() {
		logger.Debug("profession available",
			zap.String("id", string(p.ID)),
			zap.String("name", p.Name),
			zap.Int("abilities", len(p.Abilities)),
		)
	}
	sessions := session.NewManager(rules, logger.Named("session"))

	player := script.Player
	if player == "" {
		player = "player"
	}
	sess, err := sessions.Create(player)
	if err != nil {
		logger.Fatal("creating session", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	rep := replay.NewRunner(logger.Named("replay"), observability.NewMetrics(reg)).Run(sess, script)
	report(logger, sess, rep)
	reportMetrics(logger, reg)

	if *persist {
		if err := save(context.Background(), cfg.Database, sess, logger); err != nil {
			logger.Fatal("persisting snapshot", zap.Error(err))
		}
	}

	logger.Info("simulation complete", zap.Duration("elapsed", time.Since(start)))
}

func loadCatalog(dir string) (*profession.Catalog, error) {
	if dir == "" {
		return profession.LoadDefault()
	}
	return profession.LoadDirectory(dir)
}

func sourceName(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}

func report(logger *zap.Logger, sess *session.Session, rep replay.Report) {
	p := sess.Progression
	logger.Info("replay finished",
		zap.Int("applied", rep.Applied),
		zap.Int("rejected", rep.Rejected),
		zap.Int("checks", len(rep.Checks)),
		zap.Int("turn", sess.Turn()),
	)
	logger.Info("player",
		zap.String("title", p.Title()),
		zap.Int("level", p.Level()),
		zap.Int("xp", p.XP()),
		zap.Int("xp_to_next", p.XPToNextLevel()),
		zap.Stringer("profession", p.Choice()),
		zap.Bool("choice_pending", p.PendingChoice()),
	)
	for _, id := range p.SkillIDs() {
		sk := p.Skills()[id]
		logger.Info("skill", zap.String("skill", id), zap.Int("level", sk.Level), zap.Int("xp", sk.XP))
	}
	mods := p.Modifiers()
	for _, a := range mods.Abilities {
		logger.Info("ability unlocked", zap.Int("level", a.UnlockLevel), zap.String("name", a.Name))
	}
	for _, k := range mods.Keys() {
		v, _ := mods.Get(k)
		logger.Info("modifier", zap.String("key", string(k)), zap.Stringer("value", v))
	}
	if p.PendingChoice() {
		for _, r := range p.Recommendations() {
			logger.Info("recommended profession",
				zap.String("profession", string(r.Profession)),
				zap.Float64("score", r.Score),
			)
		}
	}
	logger.Info("quests",
		zap.Int("active", len(sess.Quests.Active())),
		zap.Int("completed", len(sess.Quests.Completed())),
		zap.Int("failed", len(sess.Quests.Failed())),
		zap.Int("cooldown_turns", sess.QuestCooldown()),
	)
	for _, c := range rep.Checks {
		logger.Info("check",
			zap.Int("turn", c.Turn),
			zap.String("skill", c.Skill),
			zap.Stringer("dc", c.DC),
			zap.Int("roll", c.Result.Roll),
			zap.Int("total", c.Result.Total()),
			zap.Stringer("outcome", c.Outcome),
		)
	}
}

func reportMetrics(logger *zap.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("gathering metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		total := 0.0
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total = m.GetGauge().GetValue()
			}
		}
		logger.Info("metric", zap.String("name", mf.GetName()), zap.Float64("value", total))
	}
}

func save(ctx context.Context, dbCfg config.DatabaseConfig, sess *session.Session, logger *zap.Logger) error {
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Health(ctx, 5*time.Second); err != nil {
		return err
	}
	repo := postgres.NewSnapshotRepository(pool.DB())
	if err := repo.Save(ctx, sess.Snapshot()); err != nil {
		return err
	}
	logger.Info("snapshot saved", zap.String("session_id", sess.ID.String()))
	return nil
}
