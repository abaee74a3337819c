package routesV1Donation

import (
	"net/http"

	"github.com/ghaniswara/medi-quest/internal/entity"
	"github.com/ghaniswara/medi-quest/internal/usecase/donation"
	"github.com/ghaniswara/medi-quest/pkg/http_util"
	"github.com/labstack/echo"
)

func DonateHandler(c echo.Context, donationCase donation.IDonationUseCase) error {
	reqBody, err := http_util.DecodeJSON[entity.DonationRequest](c)

	if err != nil {
		return http_util.BadRequest(c)
	}

	if ok, err := http_util.ValidateRequest(c, &reqBody); !ok {
		return err
	}

	result, err := donationCase.Donate(c.Request().Context(), reqBody)

	if err != nil {
		c.Logger().Errorf("donate: %v", err)
		return http_util.Encode(c, http.StatusInternalServerError, map[string]string{"error": "failed to donate"})
	}

	return http_util.Encode(c, http.StatusOK, result)
}

func StatsHandler(c echo.Context, donationCase donation.IDonationUseCase) error {
	stats, err := donationCase.GetDonationStats(c.Request().Context())

	if err != nil {
		c.Logger().Errorf("donation stats: %v", err)
		return http_util.Encode(c, http.StatusInternalServerError, map[string]string{"error": "failed to get donation stats"})
	}

	return http_util.Encode(c, http.StatusOK, stats)
}
