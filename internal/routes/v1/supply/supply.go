package routesV1Supply

import (
	"net/http"

	"github.com/ghaniswara/medi-quest/internal/entity"
	"github.com/ghaniswara/medi-quest/internal/usecase/supply"
	"github.com/ghaniswara/medi-quest/pkg/http_util"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

func ListHandler(c echo.Context, supplyCase supply.ISupplyUseCase) error {
	supplies, err := supplyCase.ListSupplies(c.Request().Context())

	if err != nil {
		return internalError(c, "list supplies", err)
	}

	return http_util.Encode(c, http.StatusOK, http_util.DataResponse[[]entity.Supply]{
		Success: true,
		Data:    supplies,
	})
}

func CreateHandler(c echo.Context, supplyCase supply.ISupplyUseCase) error {
	reqBody, err := http_util.Decode[entity.SupplyRequest](c)

	if err != nil {
		return http_util.BadRequest(c)
	}

	if ok, err := http_util.ValidateRequest(c, &reqBody); !ok {
		return err
	}

	result, err := supplyCase.CreateSupply(c.Request().Context(), reqBody)

	if err != nil {
		return internalError(c, "create supply", err)
	}

	return http_util.Encode(c, http.StatusOK, result)
}

// GetHandler answers 200 with a null body for an unknown id.
func GetHandler(c echo.Context, supplyCase supply.ISupplyUseCase) error {
	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		return invalidID(c)
	}

	result, err := supplyCase.GetSupply(c.Request().Context(), id)

	if err != nil {
		return internalError(c, "get supply", err)
	}

	return http_util.Encode(c, http.StatusOK, result)
}

func UpdateHandler(c echo.Context, supplyCase supply.ISupplyUseCase) error {
	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		return invalidID(c)
	}

	reqBody, err := http_util.Decode[entity.SupplyRequest](c)

	if err != nil {
		return http_util.BadRequest(c)
	}

	if ok, err := http_util.ValidateRequest(c, &reqBody); !ok {
		return err
	}

	result, err := supplyCase.UpdateSupply(c.Request().Context(), id, reqBody)

	if err != nil {
		return internalError(c, "update supply", err)
	}

	return http_util.Encode(c, http.StatusOK, result)
}

func DeleteHandler(c echo.Context, supplyCase supply.ISupplyUseCase) error {
	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		return invalidID(c)
	}

	result, err := supplyCase.DeleteSupply(c.Request().Context(), id)

	if err != nil {
		return internalError(c, "delete supply", err)
	}

	return http_util.Encode(c, http.StatusOK, result)
}

func StatsHandler(c echo.Context, supplyCase supply.ISupplyUseCase) error {
	stats, err := supplyCase.GetSupplyStats(c.Request().Context())

	if err != nil {
		return internalError(c, "supply stats", err)
	}

	return http_util.Encode(c, http.StatusOK, stats)
}

func invalidID(c echo.Context) error {
	return http_util.Encode(c, http.StatusBadRequest, http_util.StatusResponse{
		Success: false,
		Message: "invalid supply id",
	})
}

func internalError(c echo.Context, op string, err error) error {
	c.Logger().Errorf("%s: %v", op, err)
	return http_util.Encode(c, http.StatusInternalServerError, map[string]string{"error": "failed to " + op})
}
