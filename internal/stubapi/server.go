// Package stubapi is an in-memory rendition of the SwiftCab platform API,
// used as the far end for client tests. It speaks the same envelope, cookie
// session, and ride lifecycle rules as the real service, backed by maps
// under a single mutex.
package stubapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swiftcab/swiftcab-go/domain"
)

// Seeded admin credentials. Register only issues rider and driver accounts,
// so tests that need an admin sign in with these.
const (
	AdminEmail    = "admin@swiftcab.example"
	AdminPassword = "admin-secret"
)

const sessionCookie = "swiftcab_session"

type account struct {
	domain.User
	Password string
}

// Server is the in-memory platform API.
type Server struct {
	mu       sync.Mutex
	users    map[string]*account // by user ID
	byEmail  map[string]string   // email -> user ID
	sessions map[string]string   // cookie token -> user ID
	rides    map[string]*domain.Ride
	order    []string // ride IDs in creation order

	now func() time.Time

	engine *gin.Engine
}

// New builds a Server with the admin account seeded.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		users:    make(map[string]*account),
		byEmail:  make(map[string]string),
		sessions: make(map[string]string),
		rides:    make(map[string]*domain.Ride),
		now:      time.Now,
	}

	admin := &account{
		User: domain.User{
			ID:    uuid.New().String(),
			Name:  "Platform Admin",
			Email: AdminEmail,
			Role:  domain.RoleAdmin,
		},
		Password: AdminPassword,
	}
	s.users[admin.ID] = admin
	s.byEmail[admin.Email] = admin.ID

	s.engine = s.routes()
	return s
}

// ServeHTTP makes the Server usable with httptest.NewServer.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()

	auth := r.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.POST("/logout", s.logout)
	}

	user := r.Group("/user", s.authenticated())
	{
		user.GET("/me", s.me)
		user.PATCH("/change-password", s.changePassword)
		user.PATCH("/availability", s.toggleAvailability)
		user.PATCH("/become-driver", s.becomeDriver)
		user.GET("/all-user", s.allUsers)
		user.PATCH("/driver-request/:id/approve", s.approveDriver)
		user.PATCH("/:id/toggle-block", s.toggleBlock)
		user.PATCH("/:id", s.updateProfile)
	}

	ride := r.Group("/ride", s.authenticated())
	{
		ride.POST("/request", s.requestRide)
		ride.GET("/my-rides", s.myRides)
		ride.GET("/available-rides", s.availableRides)
		ride.GET("/driver-rides", s.driverRides)
		ride.GET("/all-rides", s.allRides)
		ride.GET("/earnings", s.earnings)
		ride.GET("/:id", s.getRide)
		ride.PATCH("/:id/accept", s.acceptRide)
		ride.PATCH("/:id/status", s.updateRideStatus)
	}

	return r
}

// authenticated resolves the session cookie to an account and rejects
// missing sessions and blocked accounts before any handler runs.
func (s *Server) authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			fail(c, http.StatusUnauthorized, "not signed in")
			c.Abort()
			return
		}

		s.mu.Lock()
		userID, ok := s.sessions[token]
		var acct *account
		if ok {
			acct = s.users[userID]
		}
		s.mu.Unlock()

		if acct == nil {
			fail(c, http.StatusUnauthorized, "session expired")
			c.Abort()
			return
		}
		if acct.Blocked {
			fail(c, http.StatusForbidden, "account is blocked")
			c.Abort()
			return
		}

		c.Set("user", acct)
		c.Next()
	}
}

func currentUser(c *gin.Context) *account {
	return c.MustGet("user").(*account)
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, code int, message string, data any) {
	c.JSON(code, envelope{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, envelope{Success: false, Message: message})
}
