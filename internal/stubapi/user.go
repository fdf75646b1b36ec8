package stubapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swiftcab/swiftcab-go/domain"
)

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		fail(c, http.StatusBadRequest, "name, email and password are required")
		return
	}
	role := domain.Role(body.Role)
	if role != domain.RoleRider && role != domain.RoleDriver {
		fail(c, http.StatusBadRequest, "role must be RIDER or DRIVER")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[body.Email]; exists {
		fail(c, http.StatusConflict, "email already registered")
		return
	}

	acct := &account{
		User: domain.User{
			ID:    uuid.New().String(),
			Name:  body.Name,
			Email: body.Email,
			Phone: body.Phone,
			Role:  role,
		},
		Password: body.Password,
	}
	if role == domain.RoleDriver {
		acct.Availability = domain.AvailabilityOffline
	}
	s.users[acct.ID] = acct
	s.byEmail[acct.Email] = acct.ID

	ok(c, http.StatusCreated, "account created", userToWire(&acct.User))
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, exists := s.byEmail[body.Email]
	if !exists || s.users[userID].Password != body.Password {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if s.users[userID].Blocked {
		fail(c, http.StatusForbidden, "account is blocked")
		return
	}

	token := uuid.New().String()
	s.sessions[token] = userID
	c.SetCookie(sessionCookie, token, 3600, "/", "", false, true)

	ok(c, http.StatusOK, "signed in", userToWire(&s.users[userID].User))
}

func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	ok(c, http.StatusOK, "signed out", nil)
}

func (s *Server) me(c *gin.Context) {
	acct := currentUser(c)

	s.mu.Lock()
	wire := userToWire(&acct.User)
	s.mu.Unlock()

	ok(c, http.StatusOK, "", wire)
}

type updateProfileBody struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *Server) updateProfile(c *gin.Context) {
	acct := currentUser(c)
	targetID := c.Param("id")

	if targetID != acct.ID && !acct.IsAdmin() {
		fail(c, http.StatusForbidden, "cannot update another user's profile")
		return
	}

	var body updateProfileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, exists := s.users[targetID]
	if !exists {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	if body.Name != "" {
		target.Name = body.Name
	}
	if body.Phone != "" {
		target.Phone = body.Phone
	}

	ok(c, http.StatusOK, "profile updated", userToWire(&target.User))
}

type changePasswordBody struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) changePassword(c *gin.Context) {
	acct := currentUser(c)

	var body changePasswordBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.NewPassword) < 6 {
		fail(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct.Password != body.OldPassword {
		fail(c, http.StatusBadRequest, "old password does not match")
		return
	}
	acct.Password = body.NewPassword

	ok(c, http.StatusOK, "password changed", nil)
}

func (s *Server) toggleAvailability(c *gin.Context) {
	acct := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !acct.IsDriver() {
		fail(c, http.StatusForbidden, "only drivers have availability")
		return
	}
	if acct.Availability == domain.AvailabilityOnline {
		acct.Availability = domain.AvailabilityOffline
	} else {
		acct.Availability = domain.AvailabilityOnline
	}

	ok(c, http.StatusOK, "availability updated", userToWire(&acct.User))
}

type becomeDriverBody struct {
	Type  string `json:"type"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

func (s *Server) becomeDriver(c *gin.Context) {
	acct := currentUser(c)

	var body becomeDriverBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Model == "" || body.Plate == "" {
		fail(c, http.StatusBadRequest, "vehicle model and plate are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if acct.IsDriver() {
		fail(c, http.StatusConflict, "already a driver")
		return
	}
	if acct.DriverRequest != nil && acct.DriverRequest.Status == domain.DriverRequestPending {
		fail(c, http.StatusConflict, "driver request already pending")
		return
	}

	acct.DriverRequest = &domain.DriverRequest{
		Status: domain.DriverRequestPending,
		Vehicle: domain.Vehicle{
			Type:  domain.VehicleType(body.Type),
			Model: body.Model,
			Plate: body.Plate,
		},
		RequestedAt: s.now(),
	}

	ok(c, http.StatusOK, "driver request filed", userToWire(&acct.User))
}

func (s *Server) approveDriver(c *gin.Context) {
	acct := currentUser(c)
	if !acct.IsAdmin() {
		fail(c, http.StatusForbidden, "admin only")
		return
	}

	decision := domain.DriverRequestStatus(c.Query("status"))
	if decision != domain.DriverRequestApproved && decision != domain.DriverRequestRejected {
		fail(c, http.StatusBadRequest, "status must be approved or rejected")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, exists := s.users[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	if target.DriverRequest == nil || target.DriverRequest.Status != domain.DriverRequestPending {
		fail(c, http.StatusConflict, "no pending driver request")
		return
	}

	target.DriverRequest.Status = decision
	if decision == domain.DriverRequestApproved {
		target.DriverRequest.ApprovedAt = s.now()
		target.Role = domain.RoleDriver
		target.Availability = domain.AvailabilityOffline
		vehicle := target.DriverRequest.Vehicle
		target.Vehicle = &vehicle
	}

	ok(c, http.StatusOK, "driver request decided", userToWire(&target.User))
}

func (s *Server) toggleBlock(c *gin.Context) {
	acct := currentUser(c)
	if !acct.IsAdmin() {
		fail(c, http.StatusForbidden, "admin only")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, exists := s.users[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	if target.IsAdmin() {
		fail(c, http.StatusForbidden, "cannot block an admin")
		return
	}
	target.Blocked = !target.Blocked

	ok(c, http.StatusOK, "block flag updated", userToWire(&target.User))
}

func (s *Server) allUsers(c *gin.Context) {
	acct := currentUser(c)
	if !acct.IsAdmin() {
		fail(c, http.StatusForbidden, "admin only")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wires := make([]userWireOut, 0, len(s.users))
	for _, u := range s.users {
		wires = append(wires, userToWire(&u.User))
	}

	ok(c, http.StatusOK, "", wires)
}

type vehicleWireOut struct {
	Type  string `json:"type"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

type driverRequestWireOut struct {
	Status      string         `json:"status"`
	Vehicle     vehicleWireOut `json:"vehicle"`
	RequestedAt time.Time      `json:"requestedAt"`
	ApprovedAt  *time.Time     `json:"approvedAt,omitempty"`
}

type userWireOut struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone,omitempty"`
	Role          string                `json:"role"`
	Blocked       bool                  `json:"isBlocked"`
	Availability  string                `json:"availability,omitempty"`
	Vehicle       *vehicleWireOut       `json:"vehicle,omitempty"`
	DriverRequest *driverRequestWireOut `json:"driverRequest,omitempty"`
}

func userToWire(u *domain.User) userWireOut {
	wire := userWireOut{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         string(u.Role),
		Blocked:      u.Blocked,
		Availability: string(u.Availability),
	}
	if u.Vehicle != nil {
		wire.Vehicle = &vehicleWireOut{
			Type:  string(u.Vehicle.Type),
			Model: u.Vehicle.Model,
			Plate: u.Vehicle.Plate,
		}
	}
	if u.DriverRequest != nil {
		wire.DriverRequest = &driverRequestWireOut{
			Status: string(u.DriverRequest.Status),
			Vehicle: vehicleWireOut{
				Type:  string(u.DriverRequest.Vehicle.Type),
				Model: u.DriverRequest.Vehicle.Model,
				Plate: u.DriverRequest.Vehicle.Plate,
			},
			RequestedAt: u.DriverRequest.RequestedAt,
		}
		if !u.DriverRequest.ApprovedAt.IsZero() {
			t := u.DriverRequest.ApprovedAt
			wire.DriverRequest.ApprovedAt = &t
		}
	}
	return wire
}
