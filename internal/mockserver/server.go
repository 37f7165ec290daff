package mockserver

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"interactsh/internal/crypto"
	"interactsh/internal/domain"
)

// ErrUnknownCorrelationID is returned by Inject for ids nobody registered.
var ErrUnknownCorrelationID = errors.New("unknown correlation id")

// Options configure a Server.
type Options struct {
	// Domain is the zone interactions arrive under, used for full-id.
	Domain string
	// Token, when set, must be presented in the Authorization header, either
	// bare or as "Bearer <token>".
	Token string
	// CorrelationLength, when positive, is the exact correlation id length
	// registrations must use.
	CorrelationLength int
	Logger            zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// Random defaults to crypto/rand.
	Random io.Reader
}

type client struct {
	pub    *rsa.PublicKey
	secret string
	queue  [][]byte
}

// Server holds registrations and their pending interactions.
type Server struct {
	opts   Options
	engine *gin.Engine

	mu      sync.Mutex
	clients map[string]*client
	failure *failure
}

type failure struct {
	status int
	body   string
}

// New returns a server with its routes installed.
func New(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Random == nil {
		opts.Random = rand.Reader
	}
	s := &Server{opts: opts, clients: make(map[string]*client)}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(opts.Logger))
	api := r.Group("/", s.authorize, s.injectFailure)
	api.POST("/register", s.register)
	api.POST("/deregister", s.deregister)
	api.GET("/poll", s.poll)
	r.NoRoute(s.recordInteraction)
	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Registered reports whether correlationID holds a registration.
func (s *Server) Registered(correlationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.clients[correlationID]
	return ok
}

// Inject queues a plaintext interaction for correlationID.
func (s *Server) Inject(correlationID string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[correlationID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCorrelationID, correlationID)
	}
	c.queue = append(c.queue, append([]byte(nil), payload...))
	return nil
}

// FailWith makes every API call answer status with body until cleared with
// a zero status.
func (s *Server) FailWith(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		s.failure = nil
		return
	}
	s.failure = &failure{status: status, body: body}
}

func (s *Server) authorize(c *gin.Context) {
	if s.opts.Token == "" {
		return
	}
	h := c.GetHeader("Authorization")
	if h == s.opts.Token || h == "Bearer "+s.opts.Token {
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func (s *Server) injectFailure(c *gin.Context) {
	s.mu.Lock()
	f := s.failure
	s.mu.Unlock()
	if f != nil {
		c.String(f.status, f.body)
		c.Abort()
	}
}

func (s *Server) register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "could not decode json body: %v", err)
		return
	}
	cid := string(req.CorrelationID)
	if req.PublicKey == "" || req.SecretKey == "" || cid == "" {
		c.String(http.StatusBadRequest, "public-key, secret-key and correlation-id are required")
		return
	}
	if n := s.opts.CorrelationLength; n > 0 && len(cid) != n {
		c.String(http.StatusBadRequest, "correlation-id must be %d characters", n)
		return
	}
	pub, err := crypto.ParsePublicKey(req.PublicKey)
	if err != nil {
		c.String(http.StatusBadRequest, "could not parse public key: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.clients[cid]; taken {
		c.String(http.StatusConflict, "correlation-id provided already exists")
		return
	}
	s.clients[cid] = &client{pub: pub, secret: req.SecretKey}
	c.JSON(http.StatusOK, gin.H{"message": "registration successful"})
}

func (s *Server) deregister(c *gin.Context) {
	var req domain.DeregisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "could not decode json body: %v", err)
		return
	}
	cid := string(req.CorrelationID)

	s.mu.Lock()
	defer s.mu.Unlock()
	cl, ok := s.clients[cid]
	if !ok {
		c.String(http.StatusBadRequest, "could not get correlation-id")
		return
	}
	if cl.secret != req.SecretKey {
		c.String(http.StatusForbidden, "invalid secret key passed for user")
		return
	}
	delete(s.clients, cid)
	c.JSON(http.StatusOK, gin.H{"message": "deregistration successful"})
}

func (s *Server) poll(c *gin.Context) {
	cid, secret := c.Query("id"), c.Query("secret")
	if cid == "" || secret == "" {
		c.String(http.StatusBadRequest, "no id or secret specified")
		return
	}

	s.mu.Lock()
	cl, ok := s.clients[cid]
	if !ok {
		s.mu.Unlock()
		c.String(http.StatusBadRequest, "could not get correlation-id")
		return
	}
	if cl.secret != secret {
		s.mu.Unlock()
		c.String(http.StatusForbidden, "invalid secret key passed for user")
		return
	}
	queue := cl.queue
	cl.queue = nil
	pub := cl.pub
	s.mu.Unlock()

	resp, err := s.seal(pub, queue)
	if err != nil {
		c.String(http.StatusInternalServerError, "could not encrypt interactions: %v", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) seal(pub *rsa.PublicKey, queue [][]byte) (domain.PollResponse, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(s.opts.Random, key); err != nil {
		return domain.PollResponse{}, err
	}
	wrapped, err := crypto.EncryptOAEP(s.opts.Random, pub, key)
	if err != nil {
		return domain.PollResponse{}, err
	}
	resp := domain.PollResponse{AESKey: crypto.B64(wrapped)}
	for _, payload := range queue {
		ct, err := crypto.EncryptCFB(s.opts.Random, key, payload)
		if err != nil {
			return domain.PollResponse{}, err
		}
		resp.Data = append(resp.Data, crypto.B64(ct))
	}
	return resp, nil
}

// httpInteraction is the JSON the public servers send for HTTP hits.
type httpInteraction struct {
	Protocol      string `json:"protocol"`
	UniqueID      string `json:"unique-id"`
	FullID        string `json:"full-id"`
	RawRequest    string `json:"raw-request"`
	RawResponse   string `json:"raw-response"`
	RemoteAddress string `json:"remote-address"`
	Timestamp     string `json:"timestamp"`
}

func (s *Server) recordInteraction(c *gin.Context) {
	host := strings.ToLower(c.Request.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	body := "<html><head></head><body>" + reverse(host) + "</body></html>"

	s.mu.Lock()
	defer s.mu.Unlock()
	for cid, cl := range s.clients {
		if !strings.HasPrefix(host, cid) {
			continue
		}
		rawReq, _ := httputil.DumpRequest(c.Request, true)
		fullID := host
		if d := strings.ToLower(s.opts.Domain); d != "" {
			fullID = strings.TrimSuffix(strings.TrimSuffix(host, d), ".")
		}
		uniqueID, _, _ := strings.Cut(fullID, ".")
		payload, err := json.Marshal(httpInteraction{
			Protocol:      "http",
			UniqueID:      uniqueID,
			FullID:        fullID,
			RawRequest:    string(rawReq),
			RawResponse:   "HTTP/1.1 200 OK\r\n\r\n" + body,
			RemoteAddress: c.ClientIP(),
			Timestamp:     s.opts.Now().UTC().Format(time.RFC3339),
		})
		if err == nil {
			cl.queue = append(cl.queue, payload)
		}
		s.opts.Logger.Debug().Str("correlation_id", cid).Msg("recorded http interaction")
		break
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		event := logger.Debug()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("http_request")
	}
}
