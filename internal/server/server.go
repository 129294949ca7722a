package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Collection *handler.CollectionHandler
	Product    *handler.ProductHandler
	Review     *handler.ReviewHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	User       *handler.UserHandler
}

// Start はechoを組み立てて待ち受ける。
func Start(addr string, cfg config.Config, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(logger.RequestLogger())

	h.Collection.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Review.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Order.RegisterRoutes(e, cfg)
	h.User.RegisterRoutes(e, cfg)

	return e.Start(addr)
}
