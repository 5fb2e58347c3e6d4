package usghole

import (
	"github.com/sirupsen/logrus"
)

// Pipeline runs one complete blackhole update: fetch all blacklist sources,
// normalize and transform them into resolver rules, archive the previous
// configuration generation, write the new one and reload the resolver. Steps
// run sequentially; there is exactly one execution context.
type Pipeline struct {
	Loaders   []Loader
	Transform TransformOptions

	// Live configuration files the resolver reads.
	Generation Generation

	// Optional. Archives the previous generation before it is overwritten and
	// prunes old backups after a successful update.
	Rotator *Rotator

	// Optional. A failing reload is logged but doesn't fail the run; the new
	// configuration files are already correct on disk.
	Reloader Reloader
}

// Run executes the pipeline once. Fatal conditions (missing reload dependency,
// all sources failing, missing files at rotation time, write failures) abort
// with an error; per-source fetch failures and malformed entries are logged
// and skipped.
func (p *Pipeline) Run() error {
	if p.Reloader != nil {
		if err := p.Reloader.Check(); err != nil {
			return err
		}
	}

	lines, report, err := FetchAll(p.Loaders)
	if err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"sources": len(p.Loaders),
		"failed":  len(report.Failed),
		"lines":   len(lines),
	}).Info("fetched blacklists")

	doc := Normalize(lines)
	v4, v6 := Transform(doc, p.Transform)

	// Snapshot the generation that is about to be replaced, so the backup is a
	// real rollback point. On the first run there is nothing to archive yet.
	if p.Rotator != nil {
		for _, fam := range []struct {
			family string
			live   string
		}{
			{FamilyIPv4, p.Generation.IPv4Path},
			{FamilyIPv6, p.Generation.IPv6Path},
		} {
			if !p.Generation.Exists(fam.family) {
				Log.WithField("family", fam.family).Debug("no previous generation to archive")
				continue
			}
			if _, err := p.Rotator.Rotate(fam.family, fam.live); err != nil {
				return err
			}
		}
	}

	if err := p.Generation.Write(v4, v6); err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"rules": len(v4),
		"ipv4":  p.Generation.IPv4Path,
		"ipv6":  p.Generation.IPv6Path,
	}).Info("wrote blackhole configuration")

	if p.Reloader != nil {
		if err := p.Reloader.Reload(); err != nil {
			Log.WithError(err).Error("failed to reload resolver")
		}
	}

	if p.Rotator != nil {
		for _, family := range []string{FamilyIPv4, FamilyIPv6} {
			if err := p.Rotator.Prune(family); err != nil {
				Log.WithField("family", family).WithError(err).Warn("failed to prune backups")
			}
		}
	}
	return nil
}
