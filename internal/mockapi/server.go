package mockapi

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/models"
)

// Server PIC 后端的内存版实现：本地开发与集成测试用。
// 刻意保留线上后端的两个怪癖：getrequests 的双层 data 包裹、
// 各接口 success 包裹字段不完全一致
type Server struct {
	logger *zap.Logger

	mu          sync.Mutex
	users       map[string]*models.User // id -> user
	credentials map[string]credential   // identifier -> 凭据
	tokens      map[string]string       // access token -> user id
	cars        map[int64]*models.Car
	requests    map[int64]*models.CarRequest
	bookings    map[int64]*models.Booking
	otps        map[int64]string // booking id -> 待验证 OTP
	approvals   []models.ParkingApprovalRequest
	parkingLot  models.ParkingLot
	nextID      int64
	nextToken   int64
}

type credential struct {
	userID   string
	password string
}

// NewServer 创建空的 mock 后端
func NewServer(logger *zap.Logger) *Server {
	return &Server{
		logger:      logger,
		users:       make(map[string]*models.User),
		credentials: make(map[string]credential),
		tokens:      make(map[string]string),
		cars:        make(map[int64]*models.Car),
		requests:    make(map[int64]*models.CarRequest),
		bookings:    make(map[int64]*models.Booking),
		otps:        make(map[int64]string),
		nextID:      100,
	}
}

// Router 构建 gin 路由（路径与线上后端一致，挂在 /api/v1 下）
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")
	{
		api.POST("/auth/v2/login", s.handleLogin)
		api.POST("/auth/v2/register", s.handleRegister)

		authed := api.Group("", s.authMiddleware())
		{
			authed.GET("/auth/me", s.handleMe)

			authed.GET("/user/profile", s.handleMe)
			authed.PUT("/user/updateuser/:id", s.handleUpdateUser)
			authed.GET("/user/getuser/:id", s.handleGetUser)

			authed.GET("/car-request/parking/getrequests", s.handleAssignedRequests)
			authed.PUT("/car-request/:id/approve", s.handleApprove)
			authed.PUT("/car-request/:id/deny", s.handleDeny)

			authed.POST("/cars/add", s.handleAddCar)
			authed.GET("/cars/carbyparking/:id", s.handleCarsByParking)
			authed.GET("/cars/getcar/:id", s.handleCarDetails)
			authed.PUT("/cars/:id", s.handleUpdateCar)

			authed.POST("/parking/submit-approval", s.handleSubmitApproval)

			authed.GET("/booking/pic/dashboard", s.handleDashboard)
			authed.POST("/booking/confirm-pickup", s.handleConfirmPickup)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

// ---- 测试/开发用的数据注入 ----

// SeedUser 注入用户及其登录凭据，identifier 可以是手机号或邮箱
func (s *Server) SeedUser(user models.User, identifier, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.users[u.ID] = &u
	s.credentials[identifier] = credential{userID: u.ID, password: password}
}

// SeedRequest 注入车辆分配请求
func (s *Server) SeedRequest(req models.CarRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := req
	s.requests[r.ID] = &r
}

// SeedCar 注入车辆
func (s *Server) SeedCar(car models.Car) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := car
	s.cars[c.ID] = &c
}

// SeedBooking 注入预订及其待验证 OTP
func (s *Server) SeedBooking(b models.Booking, otp string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bc := b
	s.bookings[bc.ID] = &bc
	if otp != "" {
		s.otps[bc.ID] = otp
	}
}

// SeedParkingLot 注入 dashboard 用的停车场
func (s *Server) SeedParkingLot(lot models.ParkingLot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parkingLot = lot
}

// IssueToken 直接为用户签发 token（测试跳过登录时用）
func (s *Server) IssueToken(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueTokenLocked(userID)
}

// Approvals 已提交的停车场入驻申请副本
func (s *Server) Approvals() []models.ParkingApprovalRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ParkingApprovalRequest, len(s.approvals))
	copy(out, s.approvals)
	return out
}

// Request 按 id 取请求副本
func (s *Server) Request(id int64) (models.CarRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return models.CarRequest{}, false
	}
	return *r, true
}

func (s *Server) issueTokenLocked(userID string) string {
	s.nextToken++
	token := fmt.Sprintf("mock-token-%d", s.nextToken)
	s.tokens[token] = userID
	return token
}

func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}
