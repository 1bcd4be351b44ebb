// Package fixture serves a static album catalog over the same HTTP contract
// as the real API, for local development and integration tests.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed albums.json
var sample []byte

// Catalog is an in-memory album set served verbatim. Entries are kept as raw
// JSON so fixtures can carry nulls, missing and unknown fields.
type Catalog struct {
	list  []byte
	count int
	byID  map[string]json.RawMessage
}

// Sample returns the built-in fixture catalog.
func Sample() *Catalog {
	c, err := Parse(sample)
	if err != nil {
		panic(fmt.Sprintf("fixture: embedded sample: %v", err))
	}
	return c
}

// LoadFile parses the JSON array at path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse builds a Catalog from a JSON array of album objects. Objects with a
// string id are also served individually under /albums/{id}.
func Parse(data []byte) (*Catalog, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if entries == nil {
		entries = []json.RawMessage{}
	}

	byID := make(map[string]json.RawMessage, len(entries))
	for i, entry := range entries {
		var head struct {
			ID *string `json:"id"`
		}
		if err := json.Unmarshal(entry, &head); err != nil {
			return nil, fmt.Errorf("parse fixture: entry %d: %w", i, err)
		}
		if head.ID != nil {
			byID[*head.ID] = entry
		}
	}

	list, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode fixture: %w", err)
	}
	return &Catalog{list: list, count: len(entries), byID: byID}, nil
}

// Len reports how many albums the catalog lists.
func (c *Catalog) Len() int {
	return c.count
}

// Option configures the router.
type Option func(*options)

type options struct {
	prefix string
	delay  time.Duration
	logger *zap.Logger
}

// WithPrefix mounts the routes below prefix. The default is /api.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithDelay holds every response for d, which is handy for watching the
// loading state.
func WithDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithLogger logs each request.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewRouter returns a gin engine serving GET {prefix}/albums and
// GET {prefix}/albums/:id from c.
func NewRouter(c *Catalog, opts ...Option) *gin.Engine {
	o := options{prefix: "/api", logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	engine := gin.New()
	// Match escaped ids such as a%2Fb against :id.
	engine.UseRawPath = true
	engine.Use(gin.Recovery(), requestLogger(o.logger))
	if o.delay > 0 {
		engine.Use(delay(o.delay))
	}

	group := engine.Group("/" + strings.Trim(o.prefix, "/"))
	group.GET("/albums", func(ctx *gin.Context) {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", c.list)
	})
	group.GET("/albums/:id", func(ctx *gin.Context) {
		entry, ok := c.byID[ctx.Param("id")]
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "album not found"})
			return
		}
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", entry)
	})
	return engine
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.Info("request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func delay(d time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		select {
		case <-time.After(d):
			ctx.Next()
		case <-ctx.Request.Context().Done():
			ctx.Abort()
		}
	}
}
