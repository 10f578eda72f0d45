package plants

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"digital-garden/internal/domain/images"
	"digital-garden/internal/ports/species"
)

const (
	emptyGardenMessage = "No plants registered in your digital garden yet"
	emptySearchMessage = "No plants match your search"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/welcome", welcomeHandler(svc))

	r.Route("/plants", func(pr chi.Router) {
		pr.Get("/", listPlantsHandler(svc))
		pr.Post("/", createPlantHandler(svc))

		pr.Get("/{plantID}", getPlantHandler(svc))
		pr.Get("/{plantID}/details", plantDetailsHandler(svc))
		pr.Delete("/{plantID}", deletePlantHandler(svc))
	})

	r.Get("/images/resolve", resolveImageHandler(svc))
}

type createPlantRequest struct {
	Name            string `json:"name"`
	AcquisitionDate string `json:"acquisition_date"` // YYYY-MM-DD
	Category        string `json:"category"`         // Indoor | Outdoor
	CareNotes       string `json:"care_notes"`       // opcional
}

type plantResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	AcquisitionDate string `json:"acquisition_date"`
	Category        string `json:"category"`
	CareNotes       string `json:"care_notes"`
	ImageRef        string `json:"image_ref"`
	Enriched        bool   `json:"enriched"`

	ScientificName string `json:"scientific_name,omitempty"`
	Cycle          string `json:"cycle,omitempty"`
	Watering       string `json:"watering,omitempty"`
	Light          string `json:"light,omitempty"`
	Toxicity       string `json:"toxicity,omitempty"`
	CareLevel      string `json:"care_level,omitempty"`
	ExternalID     int    `json:"external_id,omitempty"`
}

type noticeResponse struct {
	Level          NoticeLevel `json:"level"`
	Message        string      `json:"message"`
	DismissAfterMS int64       `json:"dismiss_after_ms"`
}

type listPlantsResponse struct {
	Items        []plantResponse `json:"items"`
	Total        int             `json:"total"`
	EmptyMessage string          `json:"empty_message,omitempty"`
}

type attemptResponse struct {
	Stage     string `json:"stage"`
	Candidate string `json:"candidate,omitempty"`
	Error     string `json:"error,omitempty"`
}

type createPlantResponse struct {
	Plant      plantResponse     `json:"plant"`
	Plants     []plantResponse   `json:"plants"`
	Persisted  bool              `json:"persisted"`
	Enriched   bool              `json:"enriched"`
	ImageStage string            `json:"image_stage"`
	Attempts   []attemptResponse `json:"attempts"`
	Notice     noticeResponse    `json:"notice"`
}

type validationErrorResponse struct {
	Field  string         `json:"field"`
	Error  string         `json:"error"`
	Notice noticeResponse `json:"notice"`
}

type deletePlantResponse struct {
	Deleted   int             `json:"deleted"`
	Plants    []plantResponse `json:"plants"`
	Persisted bool            `json:"persisted"`
	Notice    noticeResponse  `json:"notice"`
}

type careResponse struct {
	Watering      string `json:"watering"`
	Light         string `json:"light"`
	Humidity      string `json:"humidity"`
	Temperature   string `json:"temperature"`
	Fertilization string `json:"fertilization"`
	Pruning       string `json:"pruning"`
}

type detailsResponse struct {
	Plant       plantResponse  `json:"plant"`
	Enriched    bool           `json:"enriched"`
	Description string         `json:"description,omitempty"`
	Care        *careResponse  `json:"care,omitempty"`
	Pests       []string       `json:"pests,omitempty"`
	Diseases    []string       `json:"diseases,omitempty"`
	Notice      noticeResponse `json:"notice"`
}

type welcomeResponse struct {
	Message       string `json:"message"`
	Total         int    `json:"total"`
	LastCareNotes string `json:"last_care_notes,omitempty"`
}

type resolveImageResponse struct {
	Name     string            `json:"name"`
	Ref      string            `json:"ref"`
	Stage    string            `json:"stage"`
	Attempts []attemptResponse `json:"attempts"`
}

// welcomeHandler godoc
// @Summary Banner de bienvenida
// @Description Devuelve el mensaje de bienvenida con la cantidad de plantas y los últimos cuidados guardados.
// @Tags plants
// @Produce json
// @Success 200 {object} welcomeResponse
// @Router /welcome [get]
func welcomeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wl, err := svc.Welcome(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, welcomeResponse{
			Message:       wl.Message,
			Total:         wl.Total,
			LastCareNotes: wl.LastCareNotes,
		})
	}
}

// listPlantsHandler godoc
// @Summary Listar plantas
// @Description Lista la colección en orden de alta. Con `q` filtra por nombre, categoría, cuidados o nombre científico (sin distinguir mayúsculas).
// @Tags plants
// @Produce json
// @Param q query string false "Término de búsqueda"
// @Success 200 {object} listPlantsResponse
// @Router /plants [get]
func listPlantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := strings.TrimSpace(r.URL.Query().Get("q"))

		items, err := svc.Search(r.Context(), term)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := listPlantsResponse{Items: toPlantResponses(items), Total: len(items)}
		if len(items) == 0 {
			resp.EmptyMessage = emptyGardenMessage
			if term != "" {
				resp.EmptyMessage = emptySearchMessage
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// createPlantHandler godoc
// @Summary Agregar planta
// @Description Valida el formulario, resuelve la imagen y consulta la base de especies en paralelo. Si la red falla la planta se agrega igual con datos básicos.
// @Tags plants
// @Accept json
// @Produce json
// @Param payload body createPlantRequest true "Datos de la planta; acquisition_date en formato YYYY-MM-DD"
// @Success 201 {object} createPlantResponse
// @Failure 400 {object} validationErrorResponse
// @Router /plants [post]
func createPlantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Create(r.Context(), Draft{
			Name:            req.Name,
			AcquisitionDate: req.AcquisitionDate,
			Category:        req.Category,
			CareNotes:       req.CareNotes,
		})
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				writeJSON(w, http.StatusBadRequest, validationErrorResponse{
					Field:  ve.Field,
					Error:  ve.Reason,
					Notice: toNoticeResponse(ErrorNotice(ve.Reason)),
				})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		all, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, createPlantResponse{
			Plant:      toPlantResponse(res.Plant),
			Plants:     toPlantResponses(all),
			Persisted:  res.Persisted,
			Enriched:   res.Enriched,
			ImageStage: res.ImageStage,
			Attempts:   toAttemptResponses(res.Attempts),
			Notice:     toNoticeResponse(res.Notice),
		})
	}
}

// getPlantHandler godoc
// @Summary Obtener planta
// @Tags plants
// @Produce json
// @Param plantID path int true "ID de la planta (posición 1..n)"
// @Success 200 {object} plantResponse
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID} [get]
func getPlantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := plantID(r)
		if !ok {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeLookupError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlantResponse(p))
	}
}

// plantDetailsHandler godoc
// @Summary Ficha de la planta
// @Description Si la planta fue enriquecida trae la ficha completa de la base de especies; si no, devuelve la vista básica.
// @Tags plants
// @Produce json
// @Param plantID path int true "ID de la planta"
// @Success 200 {object} detailsResponse
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID}/details [get]
func plantDetailsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := plantID(r)
		if !ok {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}
		view, err := svc.Details(r.Context(), id)
		if err != nil {
			writeLookupError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDetailsResponse(view))
	}
}

// deletePlantHandler godoc
// @Summary Eliminar planta
// @Description Elimina la planta y renumera las restantes 1..n. Los ids guardados por el cliente quedan obsoletos.
// @Tags plants
// @Produce json
// @Param plantID path int true "ID de la planta"
// @Success 200 {object} deletePlantResponse
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID} [delete]
func deletePlantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := plantID(r)
		if !ok {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}
		res, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeLookupError(w, err)
			return
		}

		all, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, deletePlantResponse{
			Deleted:   id,
			Plants:    toPlantResponses(all),
			Persisted: res.Persisted,
			Notice:    toNoticeResponse(res.Notice),
		})
	}
}

// resolveImageHandler godoc
// @Summary Resolver imagen
// @Description Corre la cadena de imágenes (búsqueda, foto con semilla, galería, placeholder) sin crear registros.
// @Tags images
// @Produce json
// @Param name query string true "Nombre de la planta"
// @Success 200 {object} resolveImageResponse
// @Failure 400 {string} string "name is required"
// @Router /images/resolve [get]
func resolveImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		res := svc.ResolveImage(r.Context(), name)
		writeJSON(w, http.StatusOK, resolveImageResponse{
			Name:     name,
			Ref:      res.Ref,
			Stage:    res.Stage,
			Attempts: toAttemptResponses(res.Attempts),
		})
	}
}

func plantID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "plantID"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "plant not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toPlantResponse(p Plant) plantResponse {
	return plantResponse{
		ID:              p.ID,
		Name:            p.Name,
		AcquisitionDate: p.AcquisitionDate.String(),
		Category:        string(p.Category),
		CareNotes:       p.CareNotes,
		ImageRef:        p.ImageRef,
		Enriched:        p.Enriched(),
		ScientificName:  p.ScientificName,
		Cycle:           p.Cycle,
		Watering:        p.Watering,
		Light:           p.Light,
		Toxicity:        p.Toxicity,
		CareLevel:       p.CareLevel,
		ExternalID:      p.ExternalID,
	}
}

func toPlantResponses(items []Plant) []plantResponse {
	out := make([]plantResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPlantResponse(p))
	}
	return out
}

func toNoticeResponse(n Notice) noticeResponse {
	return noticeResponse{
		Level:          n.Level,
		Message:        n.Message,
		DismissAfterMS: n.DismissAfter.Milliseconds(),
	}
}

func toAttemptResponses(attempts []images.Attempt) []attemptResponse {
	out := make([]attemptResponse, 0, len(attempts))
	for _, a := range attempts {
		ar := attemptResponse{Stage: a.Stage, Candidate: a.Candidate}
		if a.Err != nil {
			ar.Error = a.Err.Error()
		}
		out = append(out, ar)
	}
	return out
}

func toDetailsResponse(v DetailsView) detailsResponse {
	resp := detailsResponse{
		Plant:    toPlantResponse(v.Plant),
		Enriched: v.Care != nil,
		Notice:   toNoticeResponse(v.Notice),
	}
	if v.Care == nil {
		return resp
	}
	resp.Description = v.Care.Description
	resp.Care = toCareResponse(v.Care.Care)
	resp.Pests = v.Care.Pests
	resp.Diseases = v.Care.Diseases
	return resp
}

func toCareResponse(c species.Care) *careResponse {
	return &careResponse{
		Watering:      c.Watering,
		Light:         c.Light,
		Humidity:      c.Humidity,
		Temperature:   c.Temperature,
		Fertilization: c.Fertilization,
		Pruning:       c.Pruning,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
