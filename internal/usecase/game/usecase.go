package game

import (
	"context"
	"time"

	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	WinGameResult  = "Victory"
	LoseGameResult = "Defeat"
)

type useCase struct {
	moveDelay time.Duration
	logger    *zap.Logger
}

func New(moveDelay time.Duration, logger *zap.Logger) useCase {
	return useCase{
		moveDelay: moveDelay,
		logger:    logger,
	}
}

// Play runs one human-vs-opponent session until the player leaves or the connection drops.
func (u useCase) Play(ctx context.Context, player domain.Player, match domain.Match) error {
	if err := startMatch(player, match); err != nil {
		return errors.WithMessage(err, "start match")
	}
	for {
		msg, err := player.ReceiveMessage()
		switch {
		case errors.Is(err, domain.ErrConnectionClosed):
			u.logger.Info("player disconnected", zap.String("match uuid", player.MatchUuid()))
			return nil
		case err != nil:
			return errors.WithMessage(err, "read message from player")
		}
		switch msg.Type {
		case domain.Attack:
			if err := u.handleAttack(ctx, player, match, msg); err != nil {
				return errors.WithMessage(err, "handle attack")
			}
		case domain.Reset:
			if err := match.Reset(); err != nil {
				return errors.WithMessage(err, "reset match")
			}
			if err := startMatch(player, match); err != nil {
				return errors.WithMessage(err, "restart match")
			}
		case domain.Leave:
			u.logger.Info("player left", zap.String("match uuid", player.MatchUuid()))
			return nil
		default:
			err := sendError(player, errors.WithMessagef(errUnexpectedMessageType, "type %d", msg.Type))
			if err != nil {
				return errors.WithMessage(err, "send error message")
			}
		}
	}
}

func (u useCase) handleAttack(ctx context.Context, player domain.Player, match domain.Match, msg domain.Message) error {
	move, err := utils.UnmarshalJson[domain.AttackPayload](msg.Payload)
	if err != nil {
		return requestAgain(player, errors.WithMessage(errInvalidAttackPayload, err.Error()))
	}
	report, err := match.Attack(move.Coord())
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate):
		return requestAgain(player, err)
	case errors.Is(err, domain.ErrInvalidState):
		return sendError(player, err)
	case err != nil:
		return errors.WithMessage(err, "attack")
	}
	if err := sendReport(player, report); err != nil {
		return err
	}
	for report.State == domain.OpponentTurn {
		if err := u.pause(ctx); err != nil {
			return errors.WithMessage(err, "wait before opponent move")
		}
		report, err = match.OpponentMove()
		if err != nil {
			return errors.WithMessage(err, "opponent move")
		}
		if err := sendReport(player, report, domain.HideSunkCells()); err != nil {
			return err
		}
	}
	if report.Finished() {
		u.logger.Info("match finished",
			zap.String("match uuid", player.MatchUuid()),
			zap.Stringer("state", report.State),
		)
		return sendMatchOver(player, report.State)
	}
	if err := player.SendMessage(domain.Message{Type: domain.RequestAttack}); err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

// pause keeps an opponent streak readable for a human; it never reorders shots.
func (u useCase) pause(ctx context.Context) error {
	if u.moveDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(u.moveDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func startMatch(player domain.Player, match domain.Match) error {
	err := player.SendMessage(domain.Message{
		Type:    domain.StartMatch,
		Payload: domain.NewStartMatchPayload(player.MatchUuid(), match.HumanBoard()),
	})
	if err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	if err := player.SendMessage(domain.Message{Type: domain.RequestAttack}); err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func sendReport(player domain.Player, report domain.Report, opts ...domain.AttackResultPayloadOption) error {
	err := player.SendMessage(domain.Message{
		Type:    domain.AttackResult,
		Payload: domain.NewAttackResultPayload(report, opts...),
	})
	if err != nil {
		return errors.WithMessage(err, "send attack result")
	}
	return nil
}

func sendMatchOver(player domain.Player, state domain.MatchState) error {
	payload := domain.MatchOverPayload{Winner: domain.Human, GameResult: WinGameResult}
	if state == domain.OpponentWon {
		payload = domain.MatchOverPayload{Winner: domain.Opponent, GameResult: LoseGameResult}
	}
	if err := player.SendMessage(domain.Message{Type: domain.MatchOver, Payload: payload}); err != nil {
		return errors.WithMessage(err, "send match over")
	}
	return nil
}

func sendError(player domain.Player, reason error) error {
	err := player.SendMessage(domain.Message{
		Type:    domain.Error,
		Payload: domain.ErrorPayload{Reason: reason.Error()},
	})
	if err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func requestAgain(player domain.Player, reason error) error {
	if err := sendError(player, reason); err != nil {
		return err
	}
	if err := player.SendMessage(domain.Message{Type: domain.RequestAttack}); err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}
