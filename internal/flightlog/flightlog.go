// internal/flightlog/flightlog.go
package flightlog

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/event"
)

// FlightRecord — одна строка журнала полётов.
type FlightRecord struct {
	ID              uint   `gorm:"primarykey"`
	SessionID       string `gorm:"size:36;index"`
	Sequence        int
	Angle           float64
	Power           float64
	Balance         float64
	ActualAngle     float64
	Blur            float64
	DistanceMeters  int `gorm:"index"`
	MaxHeightMeters int
	DisplayDistance string `gorm:"size:32"`
	Event           string `gorm:"size:16"`
	Reason          string `gorm:"size:16"`
	LoopIndex       int    // 0 for a manual throw
	CreatedAt       time.Time
}

// Stats summarises the flights of one session.
type Stats struct {
	Count        int64
	MaxDistance  int
	MeanDistance float64
}

// Store writes landed flights to SQLite.
type Store struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	SessionID string

	log       *slog.Logger
	loopIndex int
}

// Open connects to the database at path and migrates the schema. An empty
// path opens a private in-memory database.
func Open(path string, log *slog.Logger) (*Store, error) {
	sessionID := uuid.NewString()
	dsn := path
	if dsn == "" {
		dsn = fmt.Sprintf("file:flights-%s?mode=memory&cache=shared", sessionID)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open flight log %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// sqlite держит одну запись за раз, а in-memory база живёт пока открыто соединение
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&FlightRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate flight log: %w", err)
	}

	if path == "" {
		log.Info("using in-memory flight log", "session", sessionID)
	} else {
		log.Info("using flight log", "path", path, "session", sessionID)
	}
	return &Store{DB: db, SqlDB: sqlDB, SessionID: sessionID, log: log}, nil
}

// SetLoopIndex tags the following records with a loop iteration (0 = none).
func (s *Store) SetLoopIndex(i int) {
	s.loopIndex = i
}

// OnEvent stores every FlightLanded result.
func (s *Store) OnEvent(e event.Event) {
	if e.Type != event.FlightLanded {
		return
	}
	data, ok := e.Data.(event.LandedData)
	if !ok {
		return
	}
	if err := s.Save(data.Result); err != nil {
		s.log.Error("failed to save flight", "error", err, "flight", data.Result.Sequence)
	}
}

// Save validates and inserts one result.
func (s *Store) Save(r component.FlightResult) error {
	if err := Validate(r); err != nil {
		return err
	}
	rec := FlightRecord{
		SessionID:       s.SessionID,
		Sequence:        r.Sequence,
		Angle:           r.Parameters.Angle,
		Power:           r.Parameters.Power,
		Balance:         r.Parameters.Balance,
		ActualAngle:     r.ActualAngle,
		Blur:            r.Blur.Amount,
		DistanceMeters:  r.DistanceMeters,
		MaxHeightMeters: r.MaxHeightMeters,
		DisplayDistance: r.DisplayDistance,
		Event:           string(r.Event),
		Reason:          string(r.Reason),
		LoopIndex:       s.loopIndex,
	}
	if err := s.DB.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to insert flight %d: %w", r.Sequence, err)
	}
	s.log.Debug("flight saved", "id", rec.ID, "distance", rec.DistanceMeters, "event", rec.Event)
	return nil
}

// Validate reports every missing field of a result at once.
func Validate(r component.FlightResult) error {
	var result *multierror.Error
	if r.Sequence <= 0 {
		result = multierror.Append(result, fmt.Errorf("sequence must be positive, got %d", r.Sequence))
	}
	if r.Reason == "" {
		result = multierror.Append(result, errors.New("landing reason is empty"))
	}
	if r.DisplayDistance == "" {
		result = multierror.Append(result, errors.New("display distance is empty"))
	}
	if r.DistanceMeters < 0 {
		result = multierror.Append(result, fmt.Errorf("distance must not be negative, got %d", r.DistanceMeters))
	}
	return result.ErrorOrNil()
}

// Recent returns the last n records of every session, newest first.
func (s *Store) Recent(n int) ([]FlightRecord, error) {
	var recs []FlightRecord
	if err := s.DB.Order("id desc").Limit(n).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to query recent flights: %w", err)
	}
	return recs, nil
}

// Best returns the longest recorded flight of all time.
func (s *Store) Best() (FlightRecord, bool, error) {
	var rec FlightRecord
	err := s.DB.Order("distance_meters desc, id asc").Limit(1).Find(&rec).Error
	if err != nil {
		return FlightRecord{}, false, fmt.Errorf("failed to query best flight: %w", err)
	}
	return rec, rec.ID != 0, nil
}

// Stats aggregates the flights of the current session.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.DB.Model(&FlightRecord{}).
		Select("count(*) as count, coalesce(max(distance_meters), 0) as max_distance, coalesce(avg(distance_meters), 0) as mean_distance").
		Where("session_id = ?", s.SessionID).
		Scan(&st).Error
	if err != nil {
		return Stats{}, fmt.Errorf("failed to query flight stats: %w", err)
	}
	return st, nil
}

func (s *Store) Close() error {
	return s.SqlDB.Close()
}
