package main

import (
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logger"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// カートIDの採番。uuid.NewStringはcrypto/randベースの128bit。
type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは任意（無ければ環境変数だけで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.GoEnv)
	defer logger.Log.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Collection{},
		&model.Product{},
		&model.ProductImage{},
		&model.Review{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Log.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	collectionRepo := infraRepo.NewCollectionGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	imageRepo := infraRepo.NewProductImageGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	collectionUC := usecase.NewCollectionUsecase(collectionRepo)
	productUC := usecase.NewProductUsecase(productRepo, collectionRepo, imageRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, idGen)
	orderUC := usecase.NewOrderUsecase(txManager, clock)
	userUC := usecase.NewUserUsecase(txManager)

	//Handler生成
	handlers := server.Handlers{
		Collection: handler.NewCollectionHandler(collectionUC),
		Product:    handler.NewProductHandler(productUC),
		Review:     handler.NewReviewHandler(reviewUC),
		Cart:       handler.NewCartHandler(cartUC),
		Order:      handler.NewOrderHandler(orderUC),
		User:       handler.NewUserHandler(userUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	logger.Log.Info("starting server", zap.String("addr", addr))
	if err := server.Start(addr, cfg, handlers); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
