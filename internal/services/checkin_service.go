package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitclub_backend/internal/models"
	"fitclub_backend/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCheckInClientNotFound = errors.New("no client matches the check-in token")
	ErrCheckInValidation     = errors.New("check-in validation error")
)

// CheckInResult is returned to the front desk after a successful check-in.
type CheckInResult struct {
	Client    *models.Client `json:"client"`
	Method    string         `json:"method"`
	CheckinAt time.Time      `json:"checkin_at"`
}

// CheckInService resolves a free-text token to exactly one client and records
// the attendance event.
type CheckInService interface {
	CheckIn(orgID uuid.UUID, token, method string) (*CheckInResult, error)
	RecentCheckIns(orgID uuid.UUID, limit int) ([]models.CheckInRecord, error)
}

type checkInService struct {
	clientRepo     repositories.ClientRepository
	attendanceRepo repositories.AttendanceRepository
	db             *sql.DB
	now            func() time.Time
}

// NewCheckInService creates a new instance of CheckInService.
func NewCheckInService(clientRepo repositories.ClientRepository, attendanceRepo repositories.AttendanceRepository, db *sql.DB) CheckInService {
	return &checkInService{
		clientRepo:     clientRepo,
		attendanceRepo: attendanceRepo,
		db:             db,
		now:            time.Now,
	}
}

// CheckIn matches the token against the organization's client directory and
// appends an attendance entry for the resolved client. Duplicate check-ins are
// independent events; nothing is deduplicated. A failure to write the
// attendance entry fails the whole check-in: a resolution without a recorded
// event is not a success.
func (s *checkInService) CheckIn(orgID uuid.UUID, token, method string) (*CheckInResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token cannot be empty", ErrCheckInValidation)
	}
	switch method {
	case "":
		method = models.CheckInMethodManual
	case models.CheckInMethodManual, models.CheckInMethodQR:
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrCheckInValidation, method)
	}

	directory, err := s.clientRepo.GetClientsByOrg(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client directory: %w", err)
	}

	client := matchClient(directory, token)
	if client == nil {
		return nil, ErrCheckInClientNotFound
	}

	entry := &models.AttendanceLog{
		ClientID:  client.ID,
		Method:    method,
		CheckinAt: s.now(),
	}
	if _, err := s.attendanceRepo.AppendAttendance(s.db, entry); err != nil {
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}

	return &CheckInResult{Client: client, Method: method, CheckinAt: entry.CheckinAt}, nil
}

// matchClient applies the four matching rules in precedence order, scanning
// the directory in its stored order for each rule:
//  1. exact id match
//  2. case-insensitive substring match on full name
//  3. exact phone match
//  4. case-insensitive exact email match
//
// When a rule matches several clients the first one in directory order wins.
// That tie-break is inherited behavior, not a ranking.
func matchClient(directory []models.Client, token string) *models.Client {
	if id, err := uuid.Parse(token); err == nil {
		for i := range directory {
			if directory[i].ID == id {
				return &directory[i]
			}
		}
	}

	lowered := strings.ToLower(token)
	for i := range directory {
		if strings.Contains(strings.ToLower(directory[i].FullName), lowered) {
			return &directory[i]
		}
	}
	for i := range directory {
		if directory[i].Phone != nil && *directory[i].Phone == token {
			return &directory[i]
		}
	}
	for i := range directory {
		if directory[i].Email != nil && strings.EqualFold(*directory[i].Email, token) {
			return &directory[i]
		}
	}
	return nil
}

func (s *checkInService) RecentCheckIns(orgID uuid.UUID, limit int) ([]models.CheckInRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	records, err := s.attendanceRepo.GetRecentCheckIns(orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent check-ins: %w", err)
	}
	return records, nil
}
