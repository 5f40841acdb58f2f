package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/langchou/parkpic/internal/api/backend"
	"github.com/langchou/parkpic/internal/api/cloudinary"
	"github.com/langchou/parkpic/internal/api/geocoder"
	"github.com/langchou/parkpic/internal/config"
	"github.com/langchou/parkpic/internal/models"
	"github.com/langchou/parkpic/internal/service"
	"github.com/langchou/parkpic/internal/session"
)

const usage = `parkpic PIC 客户端

Usage: picctl <command> [flags]

Commands:
  login           登录 (-id, -password)
  logout          登出并清空本地会话
  whoami          查看当前会话 (-remote 走后端)
  register        注册 (-name, -email, -number, -password, ...)
  requests        列出待处理的车辆分配请求
  approve         审批通过 (-request, -car)
  deny            审批拒绝 (-request, -reason)
  onboard         车辆入驻并通过请求 (-request, -name, -number, ...)
  cars            按停车场列车 (-parking)
  car             车辆详情 (-id)
  update-car      更新车辆 (-id, -status, -color, -number, -images)
  parking-submit  提交停车场入驻申请
  dashboard       PIC 仪表盘
  confirm-pickup  OTP 取车确认 (-booking, -otp)
  upload          上传文件到 Cloudinary
  geocode         地址转坐标
  avatar          上传并更换头像
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	store := session.NewStore(cfg.SessionFile, logger)
	api := backend.NewClient(cfg.APIBaseURL, cfg.APITimeout, store, logger)
	geo := geocoder.NewNominatimClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, logger)

	var uploader service.AssetUploader
	if up, err := cloudinary.NewUploader(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.CloudinaryUploadPreset,
		cfg.CloudinaryFolder,
		logger,
	); err != nil {
		logger.Warn("Cloudinary unavailable, uploads will fail", zap.Error(err))
		uploader = unavailableUploader{err: err}
	} else {
		uploader = up
	}

	authSvc := service.NewAuthService(api, store, uploader, logger)
	fleetSvc := service.NewFleetService(api, uploader, logger)
	parkingSvc := service.NewParkingService(api, uploader, geo, logger)
	profileSvc := service.NewProfileService(api, store, uploader, logger)
	dashSvc := service.NewDashboardService(api, logger)

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	ctx := context.Background()
	command := os.Args[1]
	args := os.Args[2:]

	var cmdErr error
	switch command {
	case "login":
		cmdErr = runLogin(ctx, authSvc, args)
	case "logout":
		authSvc.Logout()
		fmt.Println("logged out")
	case "whoami":
		cmdErr = runWhoami(ctx, api, store, args)
	case "register":
		cmdErr = runRegister(ctx, authSvc, args)
	case "requests":
		cmdErr = runRequests(ctx, fleetSvc)
	case "approve":
		cmdErr = runApprove(ctx, fleetSvc, args)
	case "deny":
		cmdErr = runDeny(ctx, fleetSvc, args)
	case "onboard":
		cmdErr = runOnboard(ctx, fleetSvc, args)
	case "cars":
		cmdErr = runCars(ctx, fleetSvc, args)
	case "car":
		cmdErr = runCar(ctx, fleetSvc, args)
	case "update-car":
		cmdErr = runUpdateCar(ctx, fleetSvc, args)
	case "parking-submit":
		cmdErr = runParkingSubmit(ctx, parkingSvc, args)
	case "dashboard":
		cmdErr = runDashboard(ctx, dashSvc)
	case "confirm-pickup":
		cmdErr = runConfirmPickup(ctx, dashSvc, args)
	case "upload":
		cmdErr = runUpload(ctx, uploader, args)
	case "geocode":
		cmdErr = runGeocode(ctx, geo, args)
	case "avatar":
		cmdErr = runAvatar(ctx, profileSvc, args)
	default:
		fmt.Print(usage)
		os.Exit(2)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, svc *service.AuthService, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	identifier := fs.String("id", "", "手机号或邮箱")
	password := fs.String("password", "", "密码")
	fs.Parse(args)

	user, err := svc.Login(ctx, *identifier, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func runWhoami(ctx context.Context, api *backend.Client, store *session.Store, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	remote := fs.Bool("remote", false, "从后端拉取而不是读本地会话")
	fs.Parse(args)

	if *remote {
		user, err := api.Me(ctx)
		if err != nil {
			return err
		}
		return printJSON(user)
	}

	snapshot := store.Snapshot()
	if !snapshot.LoggedIn() {
		return fmt.Errorf("not logged in")
	}
	return printJSON(snapshot.User)
}

func runRegister(ctx context.Context, svc *service.AuthService, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	input := service.RegisterInput{Role: "vendor"}
	fs.StringVar(&input.Name, "name", "", "姓名")
	fs.StringVar(&input.Email, "email", "", "邮箱")
	fs.StringVar(&input.Number, "number", "", "手机号")
	fs.StringVar(&input.Password, "password", "", "密码")
	fs.IntVar(&input.Age, "age", 0, "年龄")
	fs.StringVar(&input.City, "city", "", "城市")
	fs.StringVar(&input.State, "state", "", "省/邦")
	fs.StringVar(&input.Country, "country", "", "国家")
	fs.StringVar(&input.Locality, "locality", "", "街区")
	fs.IntVar(&input.Pincode, "pincode", 0, "邮编")
	fs.StringVar(&input.AadharNumber, "aadhar", "", "Aadhaar 号")
	fs.StringVar(&input.AadharImgRef, "aadhar-img", "", "Aadhaar 图片路径或 URL")
	fs.StringVar(&input.DLNumber, "dl", "", "驾照号")
	fs.StringVar(&input.DLImgRef, "dl-img", "", "驾照图片路径或 URL")
	fs.StringVar(&input.PassportNumber, "passport", "", "护照号")
	fs.StringVar(&input.PassportImgRef, "passport-img", "", "护照图片路径或 URL")
	fs.StringVar(&input.AvatarRef, "avatar", "", "头像路径或 URL")
	fs.Parse(args)

	user, err := svc.Register(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("registered as %s (id=%s)\n", user.Name, user.ID)
	return nil
}

func runRequests(ctx context.Context, svc *service.FleetService) error {
	requests, err := svc.PendingRequests(ctx)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		fmt.Println("no pending requests")
		return nil
	}
	return printJSON(requests)
}

// findRequest approve/deny 前先拉取请求确认其当前状态
func findRequest(ctx context.Context, svc *service.FleetService, id int64) (*models.CarRequest, error) {
	requests, err := svc.PendingRequests(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range requests {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("request %d not found among pending requests", id)
}

func runApprove(ctx context.Context, svc *service.FleetService, args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	requestID := fs.Int64("request", 0, "请求 id")
	carID := fs.Int64("car", 0, "车辆 id")
	fs.Parse(args)

	request, err := findRequest(ctx, svc, *requestID)
	if err != nil {
		return err
	}
	if err := svc.Approve(ctx, *request, *carID); err != nil {
		return err
	}
	fmt.Printf("request %d approved with car %d\n", *requestID, *carID)
	return nil
}

func runDeny(ctx context.Context, svc *service.FleetService, args []string) error {
	fs := flag.NewFlagSet("deny", flag.ExitOnError)
	requestID := fs.Int64("request", 0, "请求 id")
	reason := fs.String("reason", "", "拒绝原因")
	fs.Parse(args)

	request, err := findRequest(ctx, svc, *requestID)
	if err != nil {
		return err
	}
	if err := svc.Deny(ctx, *request, *reason); err != nil {
		return err
	}
	fmt.Printf("request %d denied\n", *requestID)
	return nil
}

func runOnboard(ctx context.Context, svc *service.FleetService, args []string) error {
	fs := flag.NewFlagSet("onboard", flag.ExitOnError)
	input := service.OnboardCarInput{}
	var images string
	fs.Int64Var(&input.RequestID, "request", 0, "请求 id")
	fs.StringVar(&input.Name, "name", "", "车辆名称")
	fs.StringVar(&input.Number, "number", "", "车牌号")
	fs.Int64Var(&input.VendorID, "vendor", 0, "vendor id")
	fs.Int64Var(&input.ParkingID, "parking", 0, "停车场 id")
	fs.Int64Var(&input.CatalogID, "catalog", 0, "catalog id")
	fs.StringVar(&input.Color, "color", "", "颜色")
	fs.StringVar(&input.RCNumber, "rc", "", "RC 号")
	fs.StringVar(&input.RCImgRef, "rc-img", "", "RC 图片路径或 URL")
	fs.StringVar(&input.PollutionImgRef, "pollution-img", "", "环保证图片")
	fs.StringVar(&input.InsuranceImgRef, "insurance-img", "", "保险图片")
	fs.StringVar(&images, "images", "", "车辆照片，逗号分隔")
	fs.Parse(args)

	if images != "" {
		input.ImageRefs = strings.Split(images, ",")
	}

	request, err := findRequest(ctx, svc, input.RequestID)
	if err != nil {
		return err
	}

	car, err := svc.OnboardCar(ctx, *request, input)
	if err != nil {
		return err
	}
	fmt.Printf("car %d onboarded, request %d approved\n", car.ID, input.RequestID)
	return nil
}

func runCars(ctx context.Context, svc *service.FleetService, args []string) error {
	fs := flag.NewFlagSet("cars", flag.ExitOnError)
	parkingID := fs.Int64("parking", 0, "停车场 id")
	fs.Parse(args)

	cars, err := svc.Cars(ctx, *parkingID)
	if err != nil {
		return err
	}
	return printJSON(cars)
}

func runCar(ctx context.Context, svc *service.FleetService, args []string) error {
	fs := flag.NewFlagSet("car", flag.ExitOnError)
	id := fs.Int64("id", 0, "车辆 id")
	fs.Parse(args)

	detail, err := svc.CarDetails(ctx, *id)
	if err != nil {
		return err
	}
	return printJSON(detail)
}

func runUpdateCar(ctx context.Context, svc *service.FleetService, args []string) error {
	fs := flag.NewFlagSet("update-car", flag.ExitOnError)
	id := fs.Int64("id", 0, "车辆 id")
	number := fs.String("number", "", "车牌号")
	color := fs.String("color", "", "颜色")
	status := fs.String("status", "", "状态")
	images := fs.String("images", "", "照片，逗号分隔")
	fs.Parse(args)

	var patch models.CarPatch
	if *number != "" {
		patch.Number = number
	}
	if *color != "" {
		patch.Color = color
	}
	if *status != "" {
		patch.Status = status
	}
	if *images != "" {
		refs := strings.Split(*images, ",")
		patch.Images = &refs
	}

	car, err := svc.UpdateCar(ctx, *id, patch)
	if err != nil {
		return err
	}
	return printJSON(car)
}

func runParkingSubmit(ctx context.Context, svc *service.ParkingService, args []string) error {
	fs := flag.NewFlagSet("parking-submit", flag.ExitOnError)
	input := service.ParkingApprovalInput{}
	var images string
	fs.StringVar(&input.Name, "name", "", "停车场名称")
	fs.StringVar(&input.Locality, "locality", "", "街区")
	fs.StringVar(&input.City, "city", "", "城市")
	fs.StringVar(&input.State, "state", "", "省/邦")
	fs.StringVar(&input.Country, "country", "", "国家")
	fs.IntVar(&input.Pincode, "pincode", 0, "邮编")
	fs.IntVar(&input.Capacity, "capacity", 0, "容量")
	fs.StringVar(&input.MainImageRef, "main-img", "", "主图路径或 URL")
	fs.StringVar(&images, "images", "", "附加图片，逗号分隔")
	fs.Parse(args)

	if images != "" {
		input.ImageRefs = strings.Split(images, ",")
	}

	resp, err := svc.SubmitApproval(ctx, input)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runDashboard(ctx context.Context, svc *service.DashboardService) error {
	dashboard, err := svc.Fetch(ctx)
	if err != nil {
		return err
	}
	return printJSON(dashboard)
}

func runConfirmPickup(ctx context.Context, svc *service.DashboardService, args []string) error {
	fs := flag.NewFlagSet("confirm-pickup", flag.ExitOnError)
	bookingID := fs.Int64("booking", 0, "预订 id")
	otp := fs.String("otp", "", "OTP 验证码")
	fs.Parse(args)

	if err := svc.ConfirmPickup(ctx, *bookingID, *otp); err != nil {
		return err
	}
	fmt.Printf("pickup confirmed for booking %d\n", *bookingID)
	return nil
}

func runUpload(ctx context.Context, uploader service.AssetUploader, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: picctl upload <file>")
	}
	url, err := uploader.UploadFile(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func runGeocode(ctx context.Context, geo geocoder.Geocoder, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: picctl geocode <address>")
	}
	coords := geo.Geocode(ctx, strings.Join(args, " "))
	if coords == nil {
		return fmt.Errorf("no match for address")
	}
	fmt.Printf("%f,%f\n", coords.Lat, coords.Lng)
	return nil
}

func runAvatar(ctx context.Context, svc *service.ProfileService, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: picctl avatar <image>")
	}
	url, err := svc.UpdateAvatar(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

// unavailableUploader Cloudinary 未配置时的占位实现
type unavailableUploader struct {
	err error
}

func (u unavailableUploader) UploadFile(ctx context.Context, path string) (string, error) {
	return "", fmt.Errorf("cloudinary not configured: %w", u.err)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// initLogger 初始化日志
func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stderr"}
	}

	logger, _ := config.Build()
	return logger
}
