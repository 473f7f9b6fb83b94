package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/javekk/rusty-chess/internal/middleware"
	"github.com/javekk/rusty-chess/internal/model"
	"github.com/javekk/rusty-chess/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Register mounts the game routes on router.
func (gc *GameController) Register(router fiber.Router) {
	router.Post("/matchmaking/join", gc.JoinMatchmaking)
	router.Post("/create", gc.CreateGame)
	router.Post("/join/:gameId", gc.JoinGame)
	router.Get("/:gameId", gc.GetGameState)
	router.Post("/:gameId/move", gc.MakeMove)
	router.Post("/:gameId/undo", gc.Undo)
	router.Post("/:gameId/redo", gc.Redo)
	router.Post("/:gameId/restart", gc.Restart)
	router.Get("/:gameId/moves/:square", gc.LegalMoves)
	router.Get("/:gameId/archive", gc.Archive)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame(middleware.PlayerID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   model.White,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid move payload"})
	}
	from, err := model.ParsePosition(req.From)
	if err != nil {
		return errorResponse(c, err)
	}
	to, err := model.ParsePosition(req.To)
	if err != nil {
		return errorResponse(c, err)
	}

	state, err := gc.gameService.HandleMove(c.Params("gameId"), middleware.PlayerID(c), from, to)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	undone, state, err := gc.gameService.Undo(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"undone": undone, "state": state})
}

func (gc *GameController) Redo(c *fiber.Ctx) error {
	redone, state, err := gc.gameService.Redo(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"redone": redone, "state": state})
}

func (gc *GameController) Restart(c *fiber.Ctx) error {
	state, err := gc.gameService.Restart(c.UserContext(), c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	from, err := model.ParsePosition(c.Params("square"))
	if err != nil {
		return errorResponse(c, err)
	}
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), from)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"from": from, "moves": moves})
}

func (gc *GameController) Archive(c *fiber.Ctx) error {
	games, err := gc.gameService.Archived(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"games": games})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(middleware.PlayerID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

// statusFor maps service and rules errors to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotSeated), errors.Is(err, service.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameFull), errors.Is(err, service.ErrGameExists),
		errors.Is(err, service.ErrAlreadyQueued):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidCoordinate):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNoPieceAtSource), errors.Is(err, model.ErrWrongSideToMove),
		errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
