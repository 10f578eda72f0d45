package plants

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"digital-garden/internal/domain/images"
	"digital-garden/internal/platform/logger"
	"digital-garden/internal/platform/metrics"
	"digital-garden/internal/ports/species"
)

// ImageResolver es lo que el servicio necesita del pipeline de imágenes.
// saveTimeout acota la escritura al slot una vez aplicada la mutación en memoria.
const saveTimeout = 10 * time.Second

type ImageResolver interface {
	Resolve(ctx context.Context, name string) images.Resolution
}

type Options struct {
	Repo    Repository
	Store   *Store
	Images  ImageResolver
	Species species.Lookup   // opcional: nil => sin enriquecimiento
	Logger  logger.Logger    // opcional
	Metrics *metrics.Metrics // opcional
}

type Service struct {
	repo    Repository
	store   *Store
	images  ImageResolver
	species species.Lookup
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	// serializa snapshot + Save para que el slot nunca quede con una foto vieja
	saveMu sync.Mutex
}

func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    opts.Repo,
		store:   opts.Store,
		images:  opts.Images,
		species: opts.Species,
		log:     log.With(map[string]any{"component": "plants"}),
		metrics: opts.Metrics,
		now:     time.Now,
	}
}

// CreateResult es todo lo que la UI necesita después de un alta.
type CreateResult struct {
	Plant      Plant
	Enriched   bool
	ImageStage string
	Attempts   []images.Attempt
	Persisted  bool
	Notice     Notice
}

// DeleteResult describe la colección después de borrar y renumerar.
type DeleteResult struct {
	Persisted bool
	Notice    Notice
}

// DetailsView es la ficha de una planta; Care es nil si no hubo datos externos.
type DetailsView struct {
	Plant  Plant
	Care   *species.Details
	Notice Notice
}

// Welcome es el banner de bienvenida.
type Welcome struct {
	Message       string
	Total         int
	LastCareNotes string
}

// Bootstrap hidrata el repositorio desde el slot. Si el slot está vacío o roto
// se usa fallback; un slot roto se loguea pero no impide arrancar.
func (s *Service) Bootstrap(ctx context.Context, fallback []Plant) error {
	items, err := s.store.Load(ctx, fallback)
	if err != nil {
		s.storageFailed("load", err)
	}
	items = withImageRefs(items)
	if err := s.repo.Replace(ctx, items); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	s.observeSize(ctx)
	s.log.Info("collection loaded", map[string]any{"plants": len(items)})
	return nil
}

// Create valida, resuelve imagen y enriquece en paralelo, agrega y persiste.
// Los fallos de red o de storage nunca hacen fallar el alta.
func (s *Service) Create(ctx context.Context, d Draft) (CreateResult, error) {
	p, err := Validate(d, s.now())
	if err != nil {
		return CreateResult{}, err
	}

	var (
		res     images.Resolution
		summary species.Summary
		found   bool
		g       errgroup.Group
	)
	g.Go(func() error {
		res = s.images.Resolve(ctx, p.Name)
		return nil
	})
	g.Go(func() error {
		summary, found = s.lookupSummary(ctx, p.Name)
		return nil
	})
	_ = g.Wait()

	if found {
		applySummary(&p, summary)
	}
	p.ImageRef = res.Ref
	s.observeResolution(res)

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return CreateResult{}, err
	}

	persisted := s.persist(ctx)

	if notes := strings.TrimSpace(d.CareNotes); notes != "" {
		sctx, cancel := saveContext(ctx)
		err := s.store.SavePreference(sctx, notes)
		cancel()
		if err != nil {
			s.storageFailed("save_preference", err)
		}
	}

	msg := fmt.Sprintf("Plant %q added with basic data", created.Name)
	if found {
		msg = fmt.Sprintf("Plant %q added with full information from the species database", created.Name)
	}

	s.log.Info("plant created", map[string]any{
		"id":          created.ID,
		"name":        created.Name,
		"enriched":    found,
		"image_stage": res.Stage,
		"persisted":   persisted,
	})

	return CreateResult{
		Plant:      created,
		Enriched:   found,
		ImageStage: res.Stage,
		Attempts:   res.Attempts,
		Persisted:  persisted,
		Notice:     SuccessNotice(msg),
	}, nil
}

// Delete borra y renumera. Cualquier id guardado afuera queda obsoleto.
func (s *Service) Delete(ctx context.Context, id int) (DeleteResult, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}
	if !ok {
		return DeleteResult{}, ErrNotFound
	}

	persisted := s.persist(ctx)
	s.log.Info("plant deleted", map[string]any{"id": id, "persisted": persisted})

	return DeleteResult{
		Persisted: persisted,
		Notice:    SuccessNotice("Plant removed from the garden"),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (Plant, error) {
	if id <= 0 {
		return Plant{}, ErrNotFound
	}
	return s.repo.Find(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Plant, error) {
	return s.repo.List(ctx)
}

// Search filtra por término; nunca modifica la colección.
func (s *Service) Search(ctx context.Context, term string) ([]Plant, error) {
	return s.repo.Filter(ctx, MatchTerm(term))
}

// Details intenta traer la ficha externa si la planta fue enriquecida.
func (s *Service) Details(ctx context.Context, id int) (DetailsView, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return DetailsView{}, err
	}
	view := DetailsView{
		Plant:  p,
		Notice: InfoNotice(fmt.Sprintf("Showing basic information for %q", p.Name)),
	}
	if !p.Enriched() || s.species == nil {
		return view, nil
	}

	d, err := s.species.LookupDetail(ctx, p.ExternalID)
	if err != nil {
		s.enrichmentFailed("detail", p.Name, err)
		view.Notice = InfoNotice(fmt.Sprintf("Detailed information for %q is unavailable, showing basic data", p.Name))
		return view, nil
	}
	s.countLookup("detail", "ok")
	view.Care = &d
	view.Notice = InfoNotice(fmt.Sprintf("Detailed information for %q loaded", p.Name))
	return view, nil
}

func (s *Service) Welcome(ctx context.Context) (Welcome, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return Welcome{}, err
	}
	last, err := s.store.LoadPreference(ctx)
	if err != nil {
		s.storageFailed("load_preference", err)
		last = ""
	}

	w := Welcome{Total: len(items), LastCareNotes: last}
	switch {
	case last != "":
		w.Message = fmt.Sprintf("Welcome to your digital garden (%d plants) - Last care notes: %s", w.Total, last)
	case w.Total > 0:
		w.Message = fmt.Sprintf("Welcome to your digital garden! You have %d plants", w.Total)
	default:
		w.Message = "Welcome to your digital garden! Add your first plant"
	}
	return w, nil
}

// ResolveImage expone el pipeline de imágenes sin crear registros.
func (s *Service) ResolveImage(ctx context.Context, name string) images.Resolution {
	res := s.images.Resolve(ctx, name)
	s.observeResolution(res)
	return res
}

func (s *Service) lookupSummary(ctx context.Context, name string) (species.Summary, bool) {
	if s.species == nil {
		return species.Summary{}, false
	}
	sum, err := s.species.LookupSummary(ctx, name)
	if err != nil {
		s.enrichmentFailed("summary", name, err)
		return species.Summary{}, false
	}
	s.countLookup("summary", "ok")
	return sum, true
}

func applySummary(p *Plant, sum species.Summary) {
	p.ScientificName = sum.ScientificName
	p.Cycle = sum.Cycle
	p.Watering = sum.Watering
	p.Light = sum.Light
	p.Toxicity = sum.Toxicity
	p.CareLevel = sum.CareLevel
	p.ExternalID = sum.ExternalID

	// los cuidados del usuario se mantienen; solo se reemplaza el texto por defecto
	if p.CareNotes == DefaultCareNotes {
		p.CareNotes = EnrichedCareNotes
	}
}

// withImageRefs completa imageRef en registros viejos que lo perdieron.
func withImageRefs(items []Plant) []Plant {
	out := make([]Plant, len(items))
	copy(out, items)
	for i := range out {
		if strings.TrimSpace(out[i].ImageRef) == "" {
			out[i].ImageRef = images.SVG(out[i].Name)
		}
	}
	return out
}

// saveContext se desprende de la cancelación del request: si la mutación ya
// entró en memoria, el slot tiene que recibirla aunque el cliente se haya ido.
func saveContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
}

// persist guarda la colección completa. false => memoria adelantada respecto del slot.
func (s *Service) persist(ctx context.Context) bool {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	ctx, cancel := saveContext(ctx)
	defer cancel()

	items, err := s.repo.List(ctx)
	if err != nil {
		s.storageFailed("snapshot", err)
		return false
	}
	if s.metrics != nil {
		s.metrics.Plants.Set(float64(len(items)))
	}
	if err := s.store.Save(ctx, items); err != nil {
		s.storageFailed("save", err)
		return false
	}
	return true
}

func (s *Service) observeSize(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	if items, err := s.repo.List(ctx); err == nil {
		s.metrics.Plants.Set(float64(len(items)))
	}
}

func (s *Service) storageFailed(op string, err error) {
	s.log.Error("storage failure", map[string]any{"op": op, "error": err})
	if s.metrics != nil {
		s.metrics.StorageFailures.WithLabelValues(op).Inc()
	}
}

func (s *Service) enrichmentFailed(kind, name string, err error) {
	outcome := "error"
	lvl := s.log.Warn
	switch {
	case errors.Is(err, species.ErrNotConfigured):
		outcome = "disabled"
		lvl = s.log.Debug
	case errors.Is(err, species.ErrNoMatch):
		outcome = "no_match"
		lvl = s.log.Info
	}
	lvl("species lookup failed", map[string]any{"kind": kind, "name": name, "error": err})
	s.countLookup(kind, outcome)
}

func (s *Service) countLookup(kind, outcome string) {
	if s.metrics != nil {
		s.metrics.EnrichmentLookups.WithLabelValues(kind, outcome).Inc()
	}
}

func (s *Service) observeResolution(res images.Resolution) {
	if s.metrics == nil {
		return
	}
	s.metrics.ImageResolutions.WithLabelValues(res.Stage).Inc()
}
