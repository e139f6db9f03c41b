package handler

import (
	"context"
	"errors"
	"net"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pubmed-research-api/internal/models"
	"pubmed-research-api/internal/service"
)

// ErrorHandler converts every error escaping a handler into the failure
// envelope. Expected failures arrive as *fiber.Error with their status
// already chosen; anything else is an internal fault, logged in full but
// reported generically.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(models.Fail(fe.Message))
		}

		log.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(models.Fail("Internal server error occurred"))
	}
}

// respond writes the operation outcome. A query that completed with no
// matches is an answer, not a fault: it becomes a 200 failure envelope.
// Transport errors, bad upstream statuses and timeouts become 502 with a
// summarized message; prefix names the operation for the caller.
func respond(c *fiber.Ctx, data string, err error, prefix string) error {
	if err == nil {
		return c.JSON(models.Ok(data))
	}

	var noRes *service.NoResultsError
	if errors.As(err, &noRes) {
		return c.JSON(models.Fail(noRes.Message))
	}

	if isTimeout(err) {
		return fiber.NewError(fiber.StatusBadGateway, prefix+": PubMed request timed out")
	}
	return fiber.NewError(fiber.StatusBadGateway, prefix+": PubMed request failed")
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
