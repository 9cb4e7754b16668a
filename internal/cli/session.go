package cli

import (
	"context"
	"fmt"

	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/domain"
	"github.com/pvidovic/estima/internal/phases"
	"github.com/pvidovic/estima/internal/repository"
)

// session is one loaded editing context: a project record (or a scratch
// context when no project is selected), its resolver and its engine.
// Commands mutate through the session and call save once at the end.
type session struct {
	app      *App
	rec      *repository.ProjectRecord
	resolver *config.Resolver
	engine   *phases.Engine
}

// openSession loads the selected project, or a scratch context bound to
// the global configuration only. Scratch contexts allow global-scope
// mutations and read-only views without a project.
func (a *App) openSession(ctx context.Context) (*session, error) {
	s := &session{app: a}

	if a.ProjectName == "" {
		s.resolver = config.NewResolver(a.Store, nil)
		s.engine = phases.NewEngine(s.resolver, a.Definitions)
		s.engine.Sync(nil, nil, 0)
		return s, nil
	}

	rec, err := a.Projects.GetByName(ctx, a.ProjectName)
	if err != nil {
		return nil, fmt.Errorf("loading project %q: %w", a.ProjectName, err)
	}
	s.rec = rec
	s.resolver = config.NewResolver(a.Store, &rec.Document.Config)
	s.engine = phases.NewEngine(s.resolver, a.Definitions)
	for role, id := range rec.Document.SelectedSuppliers {
		s.engine.SelectSupplier(role, id)
	}
	s.engine.Sync(rec.Document.Phases, rec.Document.Features, rec.Document.Coverage)
	return s, nil
}

// requireProject guards operations that only make sense inside a project.
func (s *session) requireProject() error {
	if s.rec == nil {
		return fmt.Errorf("no project selected (use --project or ESTIMA_PROJECT)")
	}
	return nil
}

// scope maps the --global flag onto the mutation scope, rejecting
// project-scope writes outside a project context.
func (s *session) scope(global bool) (domain.Scope, error) {
	if global {
		return domain.ScopeGlobal, nil
	}
	if err := s.requireProject(); err != nil {
		return "", err
	}
	return domain.ScopeProject, nil
}

// save writes the session back: the project document when one is loaded,
// and the global configuration whenever the store is dirty.
func (s *session) save(ctx context.Context) error {
	if s.rec != nil {
		s.rec.Document.Config = *s.resolver.Project()
		s.rec.Document.Features = s.engine.Features()
		s.rec.Document.Coverage = s.engine.Coverage()
		s.rec.Document.SelectedSuppliers = s.engine.SelectedSuppliers()

		stored := make(map[string]*domain.PhaseInstance, len(s.engine.Instances()))
		for _, inst := range s.engine.Instances() {
			stored[inst.ID] = inst
		}
		s.rec.Document.Phases = stored

		if err := s.app.Projects.Save(ctx, s.rec); err != nil {
			return fmt.Errorf("saving project %q: %w", s.rec.Name, err)
		}
	}

	if s.app.Store.Dirty() {
		if err := s.app.Config.SaveGlobal(ctx, s.app.Store.Global()); err != nil {
			return fmt.Errorf("saving global configuration: %w", err)
		}
		s.app.Store.ClearDirty()
	}
	return nil
}

// currency reads the resolved currency symbol.
func (s *session) currency() string {
	return s.resolver.Resolve().CalculationParams.String(domain.ParamCurrencySymbol, "€")
}
