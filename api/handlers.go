package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/justnitesh531/orderflow/domain"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, svc DraftService, deduper Deduper, logger *log.Logger) {
	e.GET("/healthz", healthz())
	e.GET("/api/draft", getDraft(svc, logger))
	e.POST("/api/draft/items", addItem(svc, deduper))
	e.DELETE("/api/draft/items/index/:index", removeItemAt(svc))
	e.DELETE("/api/draft/items/:id", removeItem(svc))
	e.DELETE("/api/draft", clearDraft(svc))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getDraft(svc DraftService, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newDraftRequestMetrics(ctx, logger)
		if spanCtx != nil {
			req := c.Request().WithContext(spanCtx)
			c.SetRequest(req)
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		draft, fetchErr := svc.GetDraft(ctx)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = c.String(http.StatusInternalServerError, fetchErr.Error())
			return err
		}
		groups := domain.GroupByCategory(draft.Items)
		metrics.SetItemsReturned(len(draft.Items))
		metrics.SetGroupsReturned(len(groups))

		resp := draftResponse{
			Status: draft.Status,
			Items:  draft.Items,
			Groups: groups,
		}
		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, resp)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func addItem(svc DraftService, deduper Deduper) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		lr := io.LimitReader(c.Request().Body, addItemMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		var req addItemRequest
		if err := dec.Decode(&req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}

		idemKey := c.Request().Header.Get(idempotencyKeyHeader)
		if idemKey != "" && deduper != nil {
			added, err := deduper.Add(ctx, idemKey)
			if err != nil {
				c.Logger().Error(err)
				return c.String(http.StatusInternalServerError, "idempotency check failed")
			}
			if !added {
				return c.JSON(http.StatusOK, addItemResponse{Duplicate: true})
			}
		}

		item, err := svc.AddItem(ctx, req.Name, req.Quantity, req.AddedBy)
		if err != nil {
			if idemKey != "" && deduper != nil {
				if rerr := deduper.Remove(ctx, idemKey); rerr != nil {
					c.Logger().Errorf("dedupe rollback failed: %v, key: %s", rerr, idemKey)
				}
			}
			switch {
			case errors.Is(err, domain.ErrEmptyName), errors.Is(err, domain.ErrEmptyAddedBy):
				return c.String(http.StatusBadRequest, err.Error())
			case errors.Is(err, domain.ErrConcurrencyConflict):
				return c.String(http.StatusConflict, err.Error())
			default:
				c.Logger().Error(err)
				return c.String(http.StatusInternalServerError, err.Error())
			}
		}
		return c.JSON(http.StatusCreated, addItemResponse{Item: &item})
	}
}

func removeItem(svc DraftService) echo.HandlerFunc {
	return func(c echo.Context) error {
		removed, err := svc.RemoveItem(c.Request().Context(), c.Param("id"))
		return removeResponse(c, removed, err)
	}
}

func removeItemAt(svc DraftService) echo.HandlerFunc {
	return func(c echo.Context) error {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid index")
		}
		removed, rmErr := svc.RemoveItemAt(c.Request().Context(), index)
		return removeResponse(c, removed, rmErr)
	}
}

func removeResponse(c echo.Context, removed *domain.Item, err error) error {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return c.String(http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrConcurrencyConflict):
			return c.String(http.StatusConflict, err.Error())
		default:
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, removeItemResponse{Removed: *removed})
}

func clearDraft(svc DraftService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.ClearDraft(c.Request().Context()); err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.NoContent(http.StatusNoContent)
	}
}
