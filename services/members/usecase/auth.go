package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/jwt"
	"github.com/jmlagera/coop-kiosk/internal/pkg/logger"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentialsMsg = "Invalid username or PIN. Please check your credentials and try again."

// Login authenticates a member with username + PIN, or RFID + PIN for plain
// members without a username. On success it creates a Redis-backed session and
// issues a JWT, so both kiosk-style cookie clients and token clients work.
func (u *MemberUC) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	pin := strings.TrimSpace(req.PIN)
	if pin == "" {
		return nil, apperr.Validation("PIN is required")
	}
	if !utils.IsValidPIN(pin) {
		return nil, apperr.Validation("PIN must be exactly 4 digits")
	}

	username := strings.TrimSpace(req.Username)
	rfid := utils.NormalizeRFID(req.RFID)

	var member *models.Member
	var err error

	switch {
	case username != "":
		member, err = u.memberRepo.GetMemberByUsername(ctx, username)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return nil, apperr.Unauthorized(invalidCredentialsMsg)
			}
			return nil, err
		}
	case rfid != "":
		member, err = u.memberRepo.GetMemberByRFID(ctx, rfid)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return nil, apperr.NotFound("Member not found or account is inactive")
			}
			return nil, err
		}
		// RFID login is the fallback for plain members only; anyone with a
		// username (and all staff) must use it.
		if member.Role != models.RoleMember {
			return nil, apperr.Unauthorized(`RFID login is only allowed for members with role "member"`)
		}
		if member.Username != "" {
			return nil, apperr.Validation("Please use username to login")
		}
	default:
		return nil, apperr.Validation("Username or RFID is required")
	}

	if member.PINHash == "" {
		return nil, apperr.Validation("PIN not set for this account. Please contact administrator.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PINHash), []byte(pin)); err != nil {
		return nil, apperr.Unauthorized(invalidCredentialsMsg)
	}

	sessionID := uuid.New().String()
	sessionTTL := time.Duration(u.cfg.Transfer.SessionTTLHours) * time.Hour
	if err := u.memberRepo.CreateSession(ctx, sessionID, member.ID, sessionTTL); err != nil {
		return nil, err
	}

	token, expiresAt, err := jwt.GenerateToken(member.ID, member.RFIDCardNumber, member.Role, u.cfg.JWT)
	if err != nil {
		return nil, apperr.Internal("failed to generate token", err)
	}

	logger.Info("member logged in",
		logger.String("member_id", member.ID.String()),
		logger.String("role", member.Role))

	return &models.AuthResponse{
		Member:    member,
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
		Message:   fmt.Sprintf("Welcome back, %s!", member.FullName),
	}, nil
}
