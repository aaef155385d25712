package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/spanmask/internal/logger"
	"github.com/samcharles93/spanmask/internal/masking"
)

// ServerConfig configures a Server.
type ServerConfig struct {
	// Defaults fills config fields a request leaves unset.
	Defaults masking.SpanConfig
	// Strategy is used when a request names none.
	Strategy string
	// Seed seeds the source shared by unseeded requests.
	Seed   int64
	Logger logger.Logger
}

type Server struct {
	store    *MaskStore
	defaults masking.SpanConfig
	strategy string
	clock    func() time.Time
	log      logger.Logger

	// mu guards src, which unseeded requests share.
	mu  sync.Mutex
	src masking.Source
}

func NewServer(store *MaskStore, cfg ServerConfig) *Server {
	if store == nil {
		store = NewMaskStore()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = "span"
	}
	return &Server{
		store:    store,
		defaults: cfg.Defaults,
		strategy: strategy,
		clock:    time.Now,
		log:      log,
		src:      masking.NewSource(cfg.Seed),
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/strategies", s.handleListStrategies)
	e.POST("/v1/masks", s.handleCreateMask)
	e.GET("/v1/masks/:id", s.handleGetMask)
	e.DELETE("/v1/masks/:id", s.handleDeleteMask)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "masks": s.store.Len()})
}

func (s *Server) handleListStrategies(c *echo.Context) error {
	names := masking.StrategyNames()
	data := make([]StrategyInfo, 0, len(names))
	for _, name := range names {
		_, err := masking.ParseStrategy(name, s.defaults)
		data = append(data, StrategyInfo{Name: name, Implemented: err == nil})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"object": "list",
		"data":   data,
	})
}

func (s *Server) handleCreateMask(c *echo.Context) error {
	req, err := decodeJSON[MaskRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	shape, lengths, err := requestBatch(req)
	if err != nil {
		return writeMaskingError(c, err)
	}
	cfg := s.requestConfig(req)
	name := req.Strategy
	if name == "" {
		name = s.strategy
	}
	strategy, err := masking.ParseStrategy(name, cfg)
	if err != nil {
		return writeMaskingError(c, err)
	}

	mask, err := s.compute(shape, lengths, strategy, req.Seed)
	if err != nil {
		return writeMaskingError(c, err)
	}

	rec := MaskRecord{
		CreatedAt:  s.clock().Unix(),
		Strategy:   strategy.Name(),
		Shape:      shape,
		SeqLengths: lengths,
		Seed:       req.Seed,
		Rows:       mask.Rows(),
		Masked:     mask.Count(),
		Coverage:   masking.Coverage(mask, lengths),
	}
	if _, ok := strategy.(masking.SpanMask); ok {
		rec.Config = &cfg
	}
	rec = s.store.Put(rec)
	s.log.Info("mask created", "id", rec.ID, "strategy", rec.Strategy, "batch", shape.Batch, "masked", rec.Masked)
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) handleGetMask(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return writeNotFound(c, "mask not found")
	}
	rec, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, "mask not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) handleDeleteMask(c *echo.Context) error {
	id := c.Param("id")
	if id == "" || !s.store.Delete(id) {
		return writeNotFound(c, "mask not found")
	}
	return c.JSON(http.StatusOK, DeleteMaskResp{
		ID:      id,
		Object:  "mask",
		Deleted: true,
	})
}

// compute runs the strategy on a private source when the request is seeded
// and on the shared, locked source otherwise.
func (s *Server) compute(shape masking.BatchShape, lengths []int, strategy masking.Strategy, seed *int64) (*masking.Mask, error) {
	if seed != nil {
		return masking.ComputeMask(shape, lengths, strategy, masking.NewSource(*seed))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return masking.ComputeMask(shape, lengths, strategy, s.src)
}

func (s *Server) requestConfig(req MaskRequest) masking.SpanConfig {
	cfg := s.defaults
	if req.MaskProb != nil {
		cfg.MaskProb = *req.MaskProb
	}
	if req.SpanLen != nil {
		cfg.SpanLen = *req.SpanLen
	}
	if req.MinSpans != nil {
		cfg.MinSpans = *req.MinSpans
	}
	return cfg
}

// requestBatch resolves the batch shape and valid lengths of a request.
func requestBatch(req MaskRequest) (masking.BatchShape, []int, error) {
	if req.MaxSeqLen <= 0 {
		return masking.BatchShape{}, nil, newInvalidRequest("max_seq_len must be positive")
	}
	batch := req.Batch
	if batch == 0 {
		batch = len(req.SeqLengths)
	}
	if batch <= 0 {
		return masking.BatchShape{}, nil, newInvalidRequest("batch or seq_lengths is required")
	}
	lengths := req.SeqLengths
	if len(lengths) == 0 {
		lengths = make([]int, batch)
		for i := range lengths {
			lengths[i] = req.MaxSeqLen
		}
	}
	if len(lengths) != batch {
		return masking.BatchShape{}, nil, newInvalidRequest("batch is %d but %d seq_lengths were given", batch, len(lengths))
	}
	return masking.BatchShape{Batch: batch, SeqLen: req.MaxSeqLen}, lengths, nil
}
