package mockapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/models"
)

// authMiddleware 校验 Bearer token，未认证一律 401
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing bearer token"})
			return
		}

		s.mu.Lock()
		userID, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

func (s *Server) currentUser(c *gin.Context) *models.User {
	userID := c.GetString("userID")
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[userID]
}

// handleLogin POST /auth/v2/login
func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
		AuthMethod string `json:"authMethod"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	s.mu.Lock()
	cred, ok := s.credentials[req.Identifier]
	if !ok || cred.password != req.Password {
		s.mu.Unlock()
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}
	user := *s.users[cred.userID]
	access := s.issueTokenLocked(cred.userID)
	refresh := s.issueTokenLocked(cred.userID)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successful",
		"data": gin.H{
			"user": user,
			"tokens": gin.H{
				"accessToken":  access,
				"refreshToken": refresh,
			},
			"isNewUser": false,
		},
	})
}

// handleRegister POST /auth/v2/register
func (s *Server) handleRegister(c *gin.Context) {
	var req struct {
		models.User
		Password string `json:"password"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}
	if req.Email == "" || req.Number == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email, number and password are required"})
		return
	}

	s.mu.Lock()
	user := req.User
	user.ID = strconv.FormatInt(s.allocID(), 10)
	s.users[user.ID] = &user
	s.credentials[req.Email] = credential{userID: user.ID, password: req.Password}
	s.credentials[req.Number] = credential{userID: user.ID, password: req.Password}
	access := s.issueTokenLocked(user.ID)
	refresh := s.issueTokenLocked(user.ID)
	s.mu.Unlock()

	s.logger.Debug("Registered user", zap.String("id", user.ID))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "registration successful",
		"data": gin.H{
			"user": user,
			"tokens": gin.H{
				"accessToken":  access,
				"refreshToken": refresh,
			},
			"isNewUser": true,
		},
	})
}

// handleMe GET /auth/me 与 GET /user/profile
func (s *Server) handleMe(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// handleUpdateUser PUT /user/updateuser/:id
// 只接受单 id 路径；旧客户端拼双 id 的缺陷请求会 404
func (s *Server) handleUpdateUser(c *gin.Context) {
	var patch models.UserPatch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	s.mu.Lock()
	user, ok := s.users[c.Param("id")]
	if !ok {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		return
	}
	patch.Apply(user)
	updated := *user
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user updated", "data": updated})
}

// handleGetUser GET /user/getuser/:id
func (s *Server) handleGetUser(c *gin.Context) {
	s.mu.Lock()
	user, ok := s.users[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// handleAssignedRequests GET /car-request/parking/getrequests
// 注意：线上后端这个接口是双层 data 包裹，保持一致
func (s *Server) handleAssignedRequests(c *gin.Context) {
	s.mu.Lock()
	requests := make([]models.CarRequest, 0, len(s.requests))
	for _, r := range s.requests {
		requests = append(requests, *r)
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"data": requests,
		},
	})
}

// handleApprove PUT /car-request/:id/approve
func (s *Server) handleApprove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request id"})
		return
	}

	var req struct {
		CarID int64 `json:"carid"`
	}
	if err := c.BindJSON(&req); err != nil || req.CarID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "carid is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "request not found"})
		return
	}
	if request.Status != models.RequestStatusParkingAssigned {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "request is not awaiting approval"})
		return
	}

	request.Status = models.RequestStatusApproved
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "request approved"})
}

// handleDeny PUT /car-request/:id/deny
func (s *Server) handleDeny(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request id"})
		return
	}

	var req struct {
		DenialReason string `json:"denialreason"`
	}
	if err := c.BindJSON(&req); err != nil || req.DenialReason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "denialreason is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "request not found"})
		return
	}
	if request.Status != models.RequestStatusParkingAssigned {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "request is not awaiting approval"})
		return
	}

	request.Status = models.RequestStatusDenied
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "request denied"})
}

// handleAddCar POST /cars/add
func (s *Server) handleAddCar(c *gin.Context) {
	var car models.Car
	if err := c.BindJSON(&car); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}
	if car.Name == "" || car.Number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name and number are required"})
		return
	}

	s.mu.Lock()
	car.ID = s.allocID()
	car.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	car.UpdatedAt = car.CreatedAt
	s.cars[car.ID] = &car
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "car added", "data": car})
}

// handleCarsByParking GET /cars/carbyparking/:id
// 这个接口是单层 data 包裹（与 getrequests 不一致，线上如此）
func (s *Server) handleCarsByParking(c *gin.Context) {
	parkingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid parking id"})
		return
	}

	s.mu.Lock()
	cars := make([]models.Car, 0)
	for _, car := range s.cars {
		if car.ParkingID == parkingID {
			cars = append(cars, *car)
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cars})
}

// handleCarDetails GET /cars/getcar/:id
func (s *Server) handleCarDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid car id"})
		return
	}

	s.mu.Lock()
	car, ok := s.cars[id]
	var detail models.CarDetail
	if ok {
		detail = models.CarDetail{
			Car:     *car,
			Reviews: []models.Review{},
			Parking: []models.ParkingLot{s.parkingLot},
		}
	}
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "car not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "ok",
		"data":       detail,
		"statusCode": http.StatusOK,
	})
}

// handleUpdateCar PUT /cars/:id
func (s *Server) handleUpdateCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid car id"})
		return
	}

	var patch models.CarPatch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	s.mu.Lock()
	car, ok := s.cars[id]
	if !ok {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "car not found"})
		return
	}
	if patch.Number != nil {
		car.Number = *patch.Number
	}
	if patch.Color != nil {
		car.Color = *patch.Color
	}
	if patch.Status != nil {
		car.Status = *patch.Status
	}
	if patch.Images != nil {
		car.Images = *patch.Images
	}
	car.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	updated := *car
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "car updated", "data": updated})
}

// handleSubmitApproval POST /parking/submit-approval
func (s *Server) handleSubmitApproval(c *gin.Context) {
	var req models.ParkingApprovalRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}
	if req.ParkingName == "" || req.Lat == 0 || req.Lng == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "parkingName and coordinates are required"})
		return
	}

	s.mu.Lock()
	s.approvals = append(s.approvals, req)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "parking request submitted, pending approval"})
}

// handleDashboard GET /booking/pic/dashboard
func (s *Server) handleDashboard(c *gin.Context) {
	s.mu.Lock()
	stats := models.DashboardStats{}
	cars := make([]models.Car, 0, len(s.cars))
	for _, car := range s.cars {
		cars = append(cars, *car)
		stats.TotalCars++
		switch car.Status {
		case models.CarStatusAvailable:
			stats.AvailableCars++
		case models.CarStatusMaintenance:
			stats.MaintenanceCars++
		}
	}

	pending := make([]models.Booking, 0)
	bookings := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		bookings = append(bookings, *b)
		if _, ok := s.otps[b.ID]; ok {
			pending = append(pending, *b)
		} else if b.Status == "ACTIVE" {
			stats.BookedCars++
		}
	}
	stats.PendingVerifications = len(pending)

	dashboard := models.Dashboard{
		ParkingLot:              s.parkingLot,
		Stats:                   stats,
		PendingOTPVerifications: pending,
		Bookings:                bookings,
		Cars:                    cars,
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dashboard})
}

// handleConfirmPickup POST /booking/confirm-pickup
func (s *Server) handleConfirmPickup(c *gin.Context) {
	var req struct {
		BookingID int64  `json:"bookingId"`
		OTPCode   string `json:"otpCode"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	otp, ok := s.otps[req.BookingID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "no pending verification for booking"})
		return
	}
	if otp != req.OTPCode {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid otp"})
		return
	}

	delete(s.otps, req.BookingID)
	if b, exists := s.bookings[req.BookingID]; exists {
		b.Status = "ACTIVE"
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "pickup confirmed"})
}
