package controller

import (
	"errors"

	"github.com/benbeisheim/chessduel/internal/game"
	"github.com/benbeisheim/chessduel/internal/model"
	"github.com/benbeisheim/chessduel/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/exp/slices"
)

type GameController struct {
	gameService *service.GameService
	gameManager *service.GameManager
}

func NewGameController(gameService *service.GameService, gameManager *service.GameManager) *GameController {
	return &GameController{gameService: gameService, gameManager: gameManager}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, game.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidFEN),
		errors.Is(err, model.ErrInvalidPosition),
		errors.Is(err, model.ErrInvalidMove),
		errors.Is(err, model.ErrInvalidPromotion):
		return fiber.StatusBadRequest
	case errors.Is(err, game.ErrGameFull),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrTimeout),
		errors.Is(err, service.ErrAlreadyQueued),
		errors.Is(err, service.ErrAlreadyMatched),
		errors.Is(err, service.ErrGameExists),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrEmptySquare),
		errors.Is(err, model.ErrPromotionPending),
		errors.Is(err, model.ErrNoPromotion):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req service.CreateOptions
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": gc.gameManager.GameIDs(),
	})
}

// LegalMoves answers the destinations of the caller's piece on :square.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	playerID := c.Locals("playerID").(string)

	dests, err := gc.gameService.LegalMoves(c.Params("gameId"), playerID, square)
	if err != nil {
		return fail(c, err)
	}
	moves := make([]string, 0, len(dests))
	for _, d := range dests {
		moves = append(moves, d.String())
	}
	slices.Sort(moves)
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  moves,
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if !gc.gameService.LeaveMatchmaking(playerID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player not in queue",
		})
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}
