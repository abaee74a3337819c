package routesV1

import (
	"github.com/ghaniswara/medi-quest/internal/middleware"
	routesV1Auth "github.com/ghaniswara/medi-quest/internal/routes/v1/auth"
	routesV1Donation "github.com/ghaniswara/medi-quest/internal/routes/v1/donation"
	routesV1Supply "github.com/ghaniswara/medi-quest/internal/routes/v1/supply"
	authUseCase "github.com/ghaniswara/medi-quest/internal/usecase/auth"
	"github.com/ghaniswara/medi-quest/internal/usecase/donation"
	"github.com/ghaniswara/medi-quest/internal/usecase/supply"
	"github.com/labstack/echo"
)

type UseCases struct {
	Auth     authUseCase.IAuthUseCase
	Supply   supply.ISupplyUseCase
	Donation donation.IDonationUseCase
}

func InitV1Routes(e *echo.Echo, useCases UseCases) {
	v1 := e.Group("/api/v1")

	v1.POST("/register", func(c echo.Context) error {
		return routesV1Auth.SignUpHandler(c, useCases.Auth)
	})
	v1.POST("/login", func(c echo.Context) error {
		return routesV1Auth.SignInHandler(c, useCases.Auth)
	})
	v1.GET("/me", routesV1Auth.ProfileHandler, middleware.JWTMiddleware(useCases.Auth))

	v1.GET("/supplies", func(c echo.Context) error {
		return routesV1Supply.ListHandler(c, useCases.Supply)
	})
	v1.POST("/supplies", func(c echo.Context) error {
		return routesV1Supply.CreateHandler(c, useCases.Supply)
	})
	v1.GET("/supplies/:id", func(c echo.Context) error {
		return routesV1Supply.GetHandler(c, useCases.Supply)
	})
	v1.PUT("/supplies/:id", func(c echo.Context) error {
		return routesV1Supply.UpdateHandler(c, useCases.Supply)
	})
	v1.DELETE("/supplies/:id", func(c echo.Context) error {
		return routesV1Supply.DeleteHandler(c, useCases.Supply)
	})
	v1.GET("/supply-stats", func(c echo.Context) error {
		return routesV1Supply.StatsHandler(c, useCases.Supply)
	})

	v1.POST("/donate", func(c echo.Context) error {
		return routesV1Donation.DonateHandler(c, useCases.Donation)
	})
	v1.GET("/donate-stats", func(c echo.Context) error {
		return routesV1Donation.StatsHandler(c, useCases.Donation)
	})
}
