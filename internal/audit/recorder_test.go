package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hilthontt/personnel/internal/audit"
	"github.com/hilthontt/personnel/internal/audit/mocks"
	"github.com/hilthontt/personnel/internal/domain"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

type RecorderSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *mocks.MockEmployeeHistoryRepository
	notifier *mocks.MockNotifier
	parking  *mocks.MockParkingLot
	alerter  *mocks.MockAlerter
	metrics  *mocks.MockMetrics
	recorder *audit.Recorder
	now      time.Time
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderSuite))
}

func (s *RecorderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mocks.NewMockEmployeeHistoryRepository(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.parking = mocks.NewMockParkingLot(s.ctrl)
	s.alerter = mocks.NewMockAlerter(s.ctrl)
	s.metrics = mocks.NewMockMetrics(s.ctrl)
	s.now = time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.UTC)

	s.recorder = audit.NewRecorder(audit.RecorderOptions{
		Repository:   s.repo,
		Schema:       audit.EmployeeSchema,
		Notifier:     s.notifier,
		ParkingLot:   s.parking,
		Alerter:      s.alerter,
		Metrics:      s.metrics,
		WriteTimeout: time.Second,
		Clock:        func() time.Time { return s.now },
	})
}

func snapshot(salary float64) domain.Snapshot {
	return domain.Snapshot{
		domain.FieldEmployeeID:       "EMP-1",
		domain.FieldFullName:         "Jane Doe",
		domain.FieldEmail:            "jane@example.com",
		domain.FieldPhoneNumber:      "555-123-4567",
		domain.FieldDepartment:       "Engineering",
		domain.FieldDesignation:      "Engineer",
		domain.FieldSalary:           salary,
		domain.FieldEmploymentStatus: "Active",
		domain.FieldDateOfJoining:    "2024-01-15T00:00:00.000Z",
		domain.FieldIsDeleted:        false,
		domain.FieldDeletedAt:        nil,
	}
}

func entry(op domain.Operation, before, after domain.Snapshot) audit.Entry {
	return audit.Entry{
		EmployeeID:    primitive.NewObjectID(),
		EmployeeRefID: "EMP-1",
		Operation:     op,
		Before:        before,
		After:         after,
		Provenance:    audit.Provenance{ChangedBy: " hr-admin ", ChangeReason: "Annual review"},
	}
}

func (s *RecorderSuite) TestRecordCreate() {
	var stored *domain.EmployeeHistory
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h *domain.EmployeeHistory) error {
		stored = h
		return nil
	})
	s.metrics.EXPECT().HistoryRecorded(domain.OperationCreate)
	s.notifier.EXPECT().HistoryRecorded(gomock.Any(), gomock.Any()).Return(nil)

	in := entry(domain.OperationCreate, nil, snapshot(85000))
	history, err := s.recorder.Record(context.Background(), in)

	s.Require().NoError(err)
	s.Same(stored, history)
	s.False(history.ID.IsZero())
	s.Equal(in.EmployeeID, history.EmployeeID)
	s.Equal(domain.OperationCreate, history.Operation)
	s.NotNil(history.Changes)
	s.Empty(history.Changes)
	s.Equal(snapshot(85000), history.Snapshot)
	s.Equal("hr-admin", history.ChangedBy)
	s.Equal("Annual review", history.ChangeReason)
	s.Equal(audit.EmployeeSchema.Version(), history.SchemaVersion)
	s.Equal(s.now.Truncate(time.Millisecond), history.CreatedAt)
}

func (s *RecorderSuite) TestRecordUpdateComputesChanges() {
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.metrics.EXPECT().HistoryRecorded(domain.OperationUpdate)
	s.notifier.EXPECT().HistoryRecorded(gomock.Any(), gomock.Any()).Return(nil)

	history, err := s.recorder.Record(context.Background(), entry(domain.OperationUpdate, snapshot(85000), snapshot(90000)))

	s.Require().NoError(err)
	s.Equal([]domain.FieldChange{{Field: domain.FieldSalary, OldValue: 85000.0, NewValue: 90000.0}}, history.Changes)
	s.Equal(90000.0, history.Snapshot[domain.FieldSalary])
}

func (s *RecorderSuite) TestRecordNoOpUpdateIsStillRecorded() {
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.metrics.EXPECT().HistoryRecorded(domain.OperationUpdate)
	s.notifier.EXPECT().HistoryRecorded(gomock.Any(), gomock.Any()).Return(nil)

	history, err := s.recorder.Record(context.Background(), entry(domain.OperationUpdate, snapshot(85000), snapshot(85000)))

	s.Require().NoError(err)
	s.NotNil(history.Changes)
	s.Empty(history.Changes)
}

func (s *RecorderSuite) TestRecordDeleteIgnoresBefore() {
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.metrics.EXPECT().HistoryRecorded(domain.OperationDelete)
	s.notifier.EXPECT().HistoryRecorded(gomock.Any(), gomock.Any()).Return(nil)

	after := snapshot(85000)
	after[domain.FieldIsDeleted] = true
	after[domain.FieldEmploymentStatus] = "Inactive"

	history, err := s.recorder.Record(context.Background(), entry(domain.OperationDelete, snapshot(1), after))

	s.Require().NoError(err)
	s.Empty(history.Changes)
	s.Equal(true, history.Snapshot[domain.FieldIsDeleted])
}

func (s *RecorderSuite) TestSnapshotIsCopied() {
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.metrics.EXPECT().HistoryRecorded(gomock.Any())
	s.notifier.EXPECT().HistoryRecorded(gomock.Any(), gomock.Any()).Return(nil)

	after := snapshot(85000)
	history, err := s.recorder.Record(context.Background(), entry(domain.OperationCreate, nil, after))
	s.Require().NoError(err)

	after[domain.FieldSalary] = 1.0
	s.Equal(85000.0, history.Snapshot[domain.FieldSalary])
}

func (s *RecorderSuite) TestRejectsInvalidEntries() {
	s.Run("missing changedBy", func() {
		in := entry(domain.OperationCreate, nil, snapshot(1))
		in.Provenance.ChangedBy = "  "

		_, err := s.recorder.Record(context.Background(), in)
		s.ErrorIs(err, audit.ErrMissingProvenance)
	})

	s.Run("unknown operation", func() {
		_, err := s.recorder.Record(context.Background(), entry("RENAME", nil, snapshot(1)))
		s.ErrorIs(err, audit.ErrInvalidOperation)
	})

	s.Run("missing snapshot", func() {
		_, err := s.recorder.Record(context.Background(), entry(domain.OperationCreate, nil, nil))
		s.Error(err)
	})
}

func (s *RecorderSuite) TestFailedWriteIsParkedAndAlerted() {
	cause := errors.New("connection reset")
	var appended *domain.EmployeeHistory

	gomock.InOrder(
		s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h *domain.EmployeeHistory) error {
			appended = h
			return cause
		}),
		s.parking.EXPECT().Park(gomock.Any(), gomock.Any(), cause).DoAndReturn(func(_ context.Context, h *domain.EmployeeHistory, _ error) error {
			s.Same(appended, h)
			return nil
		}),
		s.metrics.EXPECT().InconsistentWrite(domain.OperationUpdate),
		s.alerter.EXPECT().InconsistentWrite(gomock.Any(), gomock.Any()).Do(func(_ context.Context, err *audit.InconsistentWriteError) {
			s.True(err.Parked)
		}),
	)

	in := entry(domain.OperationUpdate, snapshot(1), snapshot(2))
	history, err := s.recorder.Record(context.Background(), in)

	s.Nil(history)
	s.Require().ErrorIs(err, audit.ErrInconsistentWrite)
	s.ErrorIs(err, cause)

	var inconsistent *audit.InconsistentWriteError
	s.Require().ErrorAs(err, &inconsistent)
	s.Equal(in.EmployeeID, inconsistent.EmployeeID)
	s.Equal(appended.ID, inconsistent.HistoryID)
	s.True(inconsistent.Parked)
}

func (s *RecorderSuite) TestFailedParkIsReported() {
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))
	s.parking.EXPECT().Park(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	s.metrics.EXPECT().InconsistentWrite(domain.OperationCreate)
	s.alerter.EXPECT().InconsistentWrite(gomock.Any(), gomock.Any())

	_, err := s.recorder.Record(context.Background(), entry(domain.OperationCreate, nil, snapshot(1)))

	var inconsistent *audit.InconsistentWriteError
	s.Require().ErrorAs(err, &inconsistent)
	s.False(inconsistent.Parked)
}

func (s *RecorderSuite) TestStalledParkIsBounded() {
	const timeout = 20 * time.Millisecond
	recorder := audit.NewRecorder(audit.RecorderOptions{
		Repository:   s.repo,
		ParkingLot:   s.parking,
		Alerter:      s.alerter,
		Metrics:      s.metrics,
		WriteTimeout: timeout,
	})

	s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ *domain.EmployeeHistory) error {
		<-ctx.Done()
		return ctx.Err()
	})
	s.parking.EXPECT().Park(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ *domain.EmployeeHistory, _ error) error {
		s.NoError(ctx.Err(), "park starts with a fresh budget")
		_, hasDeadline := ctx.Deadline()
		s.True(hasDeadline)
		<-ctx.Done()
		return ctx.Err()
	})
	s.metrics.EXPECT().InconsistentWrite(domain.OperationUpdate)
	s.alerter.EXPECT().InconsistentWrite(gomock.Any(), gomock.Any())

	start := time.Now()
	_, err := recorder.Record(context.Background(), entry(domain.OperationUpdate, snapshot(1), snapshot(2)))

	s.Less(time.Since(start), 5*time.Second)
	var inconsistent *audit.InconsistentWriteError
	s.Require().ErrorAs(err, &inconsistent)
	s.ErrorIs(err, context.DeadlineExceeded)
	s.False(inconsistent.Parked)
}

func (s *RecorderSuite) TestWriteSurvivesCallerCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ *domain.EmployeeHistory) error {
		return ctx.Err()
	})
	s.metrics.EXPECT().HistoryRecorded(domain.OperationCreate)
	s.notifier.EXPECT().HistoryRecorded(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.recorder.Record(ctx, entry(domain.OperationCreate, nil, snapshot(1)))
	s.NoError(err)
}

func (s *RecorderSuite) TestNotifierFailureDoesNotFailRecord() {
	s.repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.metrics.EXPECT().HistoryRecorded(domain.OperationCreate)
	s.notifier.EXPECT().HistoryRecorded(gomock.Any(), gomock.Any()).Return(errors.New("stream busy"))

	history, err := s.recorder.Record(context.Background(), entry(domain.OperationCreate, nil, snapshot(1)))
	s.NoError(err)
	s.NotNil(history)
}

func (s *RecorderSuite) TestNotifiersFanOut() {
	first := mocks.NewMockNotifier(s.ctrl)
	second := mocks.NewMockNotifier(s.ctrl)
	history := &domain.EmployeeHistory{ID: primitive.NewObjectID()}

	first.EXPECT().HistoryRecorded(gomock.Any(), history).Return(errors.New("first"))
	second.EXPECT().HistoryRecorded(gomock.Any(), history).Return(nil)

	err := audit.Notifiers{first, second}.HistoryRecorded(context.Background(), history)
	s.EqualError(err, "first")
}
