// Package server реализует встроенный сервер обобщенного хранилища записей.
//
// Сервер держит коллекции в памяти и повторяет контракт, на который рассчитан
// клиент: список с фильтрами field=value и field_like=value, чтение по
// идентификатору, создание с назначением идентификатора, полная замена,
// частичное слияние и удаление. Используется в разработке и тестах вместо
// внешнего хранилища.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/course-manager/internal/lib/sl"
)

// Server — хранилище записей в памяти с HTTP-интерфейсом.
type Server struct {
	mu          sync.RWMutex
	log         *slog.Logger
	collections map[string][]map[string]any
	verifyToken func(token string) error

	registry      *prometheus.Registry
	requestsTotal *prometheus.CounterVec
}

// New создает пустой сервер хранилища.
func New(log *slog.Logger) *Server {
	registry := prometheus.NewRegistry()
	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recordstore_requests_total",
		Help: "Number of record store requests by method.",
	}, []string{"method"})
	registry.MustRegister(requestsTotal)

	return &Server{
		log:           log,
		collections:   map[string][]map[string]any{},
		registry:      registry,
		requestsTotal: requestsTotal,
	}
}

// RequireAuth включает проверку bearer-токена на всех запросах к коллекциям.
// Запрос без токена или с токеном, который verify отвергает, получает 401.
func (s *Server) RequireAuth(verify func(token string) error) {
	s.verifyToken = verify
}

// Seed заменяет содержимое коллекции записями records.
func (s *Server) Seed(collection string, records []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = records
}

// LoadSeed загружает коллекции из JSON-файла вида
// {"users": [...], "courses": [...], "lessons": [...]}.
func (s *Server) LoadSeed(path string) error {
	const op = "server.LoadSeed"
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	var seed map[string][]map[string]any
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, records := range seed {
		s.collections[name] = records
	}
	return nil
}

// Routes возвращает маршрутизатор сервера хранилища.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(s.metricsMiddleware)
		r.Use(RateLimitMiddleware(s.log))
		r.Use(s.authMiddleware)
		r.Get("/{collection}", s.handleList)
		r.Post("/{collection}", s.handleCreate)
		r.Get("/{collection}/{id}", s.handleGet)
		r.Put("/{collection}/{id}", s.handleReplace)
		r.Patch("/{collection}/{id}", s.handlePatch)
		r.Delete("/{collection}/{id}", s.handleDelete)
	})
	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]map[string]any, 0)
	for _, record := range s.collections[collection] {
		if matchesQuery(record, r.URL.Query()) {
			result = append(result, record)
		}
	}
	render.JSON(w, r, result)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, record := s.find(collection, id); record != nil {
		render.JSON(w, r, record)
		return
	}
	notFound(w, r)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var record map[string]any
	if err := render.DecodeJSON(r.Body, &record); err != nil {
		s.log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]any{})
		return
	}
	if canonicalScalar(record["id"]) == "" {
		record["id"] = uuid.NewString()
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], record)
	s.mu.Unlock()

	s.log.Info("record created",
		slog.String("collection", collection),
		slog.Any("id", record["id"]))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, record)
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	var record map[string]any
	if err := render.DecodeJSON(r.Body, &record); err != nil {
		s.log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]any{})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, existing := s.find(collection, id)
	if existing == nil {
		notFound(w, r)
		return
	}
	// идентификатор записи берется из пути, тело его не переопределяет
	record["id"] = existing["id"]
	s.collections[collection][idx] = record
	render.JSON(w, r, record)
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	var fields map[string]any
	if err := render.DecodeJSON(r.Body, &fields); err != nil {
		s.log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]any{})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, existing := s.find(collection, id)
	if existing == nil {
		notFound(w, r)
		return
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		existing[k] = v
	}
	render.JSON(w, r, existing)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, existing := s.find(collection, id)
	if existing == nil {
		notFound(w, r)
		return
	}
	records := s.collections[collection]
	s.collections[collection] = append(records[:idx], records[idx+1:]...)
	render.JSON(w, r, map[string]any{})
}

// find возвращает индекс и запись с данным идентификатором.
// Вызывается под s.mu.
func (s *Server) find(collection, id string) (int, map[string]any) {
	for i, record := range s.collections[collection] {
		if canonicalScalar(record["id"]) == canonicalValue(id) {
			return i, record
		}
	}
	return -1, nil
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, map[string]any{})
}

// matchesQuery проверяет запись против всех фильтров строки запроса.
// field=value — точное совпадение, field_like=value — подстрока для строк
// и вхождение элемента для массивов.
func matchesQuery(record map[string]any, query url.Values) bool {
	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		if field, ok := strings.CutSuffix(key, "_like"); ok {
			if !matchesLike(record[field], values[0]) {
				return false
			}
			continue
		}
		if canonicalScalar(record[key]) != canonicalValue(values[0]) {
			return false
		}
	}
	return true
}

func canonicalValue(s string) string {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return s
}

// canonicalScalar приводит значение поля записи к канонической строке.
// Числа из JSON приходят как float64.
func canonicalScalar(v any) string {
	switch val := v.(type) {
	case string:
		return canonicalValue(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

func matchesLike(field any, value string) bool {
	switch val := field.(type) {
	case string:
		return strings.Contains(strings.ToLower(val), strings.ToLower(value))
	case []any:
		for _, item := range val {
			if canonicalScalar(item) == canonicalValue(value) {
				return true
			}
		}
		return false
	default:
		return canonicalScalar(field) == canonicalValue(value)
	}
}
