// handlers/staking_routes.go
package handlers

import (
	"errors"
	"time"

	"mogaland-staking-service/middleware"
	"mogaland-staking-service/services"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps the service's user-visible rejection kinds onto HTTP
// statuses. None of these are faults: a rejected action is a no-op.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrWalletNotConnected):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAlreadyMinted):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInsufficientTreasury), errors.Is(err, services.ErrInsufficientGas):
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusBadRequest
	}
}

func SetupStakingRoutes(app *fiber.App, staking *services.StakingService) {
	// 🔐 All staking routes require the gateway-forwarded user context
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	session := func(c *fiber.Ctx) *services.Session {
		userID := c.Locals("user_id").(string)
		walletAddress := c.Locals("wallet_address").(string)
		return staking.Sessions().GetOrCreate(userID, walletAddress)
	}

	securedGroup.Get("/portfolio", func(c *fiber.Ctx) error {
		sess := session(c)
		// Refresh from the contract first; sync failures degrade silently.
		staking.SyncWallet(c.UserContext(), sess)
		return c.JSON(staking.Portfolio(sess, time.Now()))
	})

	securedGroup.Post("/nfts/stake", func(c *fiber.Ctx) error {
		var req struct {
			IDs []uint64 `json:"ids"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		sess := session(c)
		result, err := staking.Stake(sess, req.IDs, time.Now())
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{
			"result":    result,
			"portfolio": staking.Portfolio(sess, time.Now()),
		})
	})

	securedGroup.Post("/nfts/unstake", func(c *fiber.Ctx) error {
		var req struct {
			IDs []uint64 `json:"ids"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		sess := session(c)
		result, err := staking.Unstake(sess, req.IDs, time.Now())
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{
			"result":    result,
			"portfolio": staking.Portfolio(sess, time.Now()),
		})
	})

	securedGroup.Post("/rewards/claim", func(c *fiber.Ctx) error {
		sess := session(c)
		amount, err := staking.ClaimAll(sess, time.Now())
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{
			"amount":    amount,
			"portfolio": staking.Portfolio(sess, time.Now()),
		})
	})

	securedGroup.Post("/points/redeem", func(c *fiber.Ctx) error {
		sess := session(c)
		amount, err := staking.RedeemPoints(sess)
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{
			"amount":    amount,
			"portfolio": staking.Portfolio(sess, time.Now()),
		})
	})

	securedGroup.Post("/nfts/mint", func(c *fiber.Ctx) error {
		sess := session(c)
		minted, err := staking.MintFromLearning(sess)
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"collectible": minted,
			"portfolio":   staking.Portfolio(sess, time.Now()),
		})
	})

	// Entry point for the (external) learning loop to accrue points and
	// task progress.
	securedGroup.Post("/points/earn", func(c *fiber.Ctx) error {
		var req struct {
			Points         int64 `json:"points"`
			CompletedTasks int64 `json:"completed_tasks"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		sess := session(c)
		staking.EarnPoints(sess, req.Points, req.CompletedTasks)
		return c.JSON(staking.Portfolio(sess, time.Now()))
	})
}
