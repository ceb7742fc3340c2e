package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mlm272/maggiemayer-portfolio/internal/media"
	"github.com/mlm272/maggiemayer-portfolio/internal/metrics"
)

// AnimationInfo describes one Lottie animation
type AnimationInfo struct {
	ID          string  `json:"id"`
	Path        string  `json:"path"`
	Description string  `json:"description"`
	Speed       float64 `json:"speed"`
}

// LottieFilesURL links to the animation on LottieFiles
func (a AnimationInfo) LottieFilesURL() string {
	return "https://app.lottiefiles.com/animation/" + a.ID
}

var animationCatalog = map[string]AnimationInfo{
	"6213873c-fb3b-4d24-b088-07820781f6c0": {
		Path:        "/images/animations/json/ask finn 11.38.44 AM.json",
		Description: "Ask Finn - Website chatbot animation (Created with After Effects & Lottie)",
		Speed:       0.3,
	},
	"439cd762-9102-4912-8229-575fe6b7bf06": {
		Path:        "/images/animations/json/Comp 1.json",
		Description: "Website animation (Created with After Effects & Lottie)",
	},
	"fc1dd80b-ba08-46b2-acec-c3ff3b4b60f7": {
		Path:        "/images/animations/json/finpulse blue.json",
		Description: "FinPulse Blue - App animation (Created with After Effects & Lottie)",
	},
	"225c8e6e-50a2-478a-b3c1-be58e43f6764": {
		Path:        "/images/animations/json/finpulse green.json",
		Description: "FinPulse Green - App animation (Created with After Effects & Lottie)",
	},
	"1f3e3787-9c9f-42b0-9a0a-8485731f95ac": {
		Path:        "/images/animations/json/loading dots.json",
		Description: "Loading Dots - App loading animation (Created with After Effects & Lottie)",
	},
}

// LookupAnimation returns the catalog entry for id. Unknown ids map to
// /images/animations/json/<id>.json at normal speed.
func LookupAnimation(id string) AnimationInfo {
	info, ok := animationCatalog[id]
	if !ok {
		info = AnimationInfo{
			Path:        "/images/animations/json/" + id + ".json",
			Description: "Animation",
		}
	}
	info.ID = id
	if info.Speed == 0 {
		info.Speed = 1
	}
	return info
}

// AnimationResult is what an animation card renders. Loading is true
// only for the placeholder emitted with the page; Error means the card
// shows its fallback instead of the player.
type AnimationResult struct {
	AnimationInfo
	URL     string          `json:"url"`
	Data    json.RawMessage `json:"data,omitempty"`
	Loading bool            `json:"loading"`
	Error   bool            `json:"error"`
}

// AnimationService loads Lottie JSON from the static root
type AnimationService struct {
	staticRoot string
	logger     *zap.Logger
	metrics    *metrics.Metrics

	mu    sync.RWMutex
	cache map[string]json.RawMessage
}

// NewAnimationService creates a new AnimationService
func NewAnimationService(staticRoot string, logger *zap.Logger, m *metrics.Metrics) *AnimationService {
	return &AnimationService{
		staticRoot: staticRoot,
		logger:     logger,
		metrics:    m,
		cache:      make(map[string]json.RawMessage),
	}
}

// Placeholder returns the card state rendered before the data arrives
func (s *AnimationService) Placeholder(id string) AnimationResult {
	info := LookupAnimation(id)
	return AnimationResult{AnimationInfo: info, URL: media.Resolve(info.Path), Loading: true}
}

// Load reads the animation JSON for id. Failures never propagate: they
// are logged and reported through the Error flag.
func (s *AnimationService) Load(ctx context.Context, id string) AnimationResult {
	info := LookupAnimation(id)
	res := AnimationResult{AnimationInfo: info, URL: media.Resolve(info.Path)}

	s.mu.RLock()
	data, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		s.metrics.AnimationLoads.WithLabelValues("hit").Inc()
		res.Data = data
		return res
	}

	data, err := s.read(ctx, info)
	if err != nil {
		s.logger.Warn("animation load failed", zap.String("id", id), zap.String("path", info.Path), zap.Error(err))
		s.metrics.AnimationLoads.WithLabelValues("error").Inc()
		res.Error = true
		return res
	}

	s.mu.Lock()
	s.cache[id] = data
	s.mu.Unlock()

	s.metrics.AnimationLoads.WithLabelValues("loaded").Inc()
	res.Data = data
	return res
}

func (s *AnimationService) read(ctx context.Context, info AnimationInfo) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(info.ID, `/\`) || strings.Contains(info.ID, "..") {
		return nil, fmt.Errorf("invalid animation id %q", info.ID)
	}

	rel := strings.TrimPrefix(path.Clean("/"+info.Path), "/")
	data, err := os.ReadFile(filepath.Join(s.staticRoot, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("failed to read animation: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("animation %s is not valid JSON", info.ID)
	}
	return json.RawMessage(data), nil
}
