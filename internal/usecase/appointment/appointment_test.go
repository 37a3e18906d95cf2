package appointment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/infra/repository"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	"github.com/BruksfildServices01/field-service-api/internal/testutil"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
	uc "github.com/BruksfildServices01/field-service-api/internal/usecase/appointment"
)

type fixture struct {
	db       *gorm.DB
	deps     uc.Deps
	owner    access.Principal
	customer *models.User
	tech     *models.User
	tech2    *models.User
	sr       *models.ServiceRequest
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	loc := timezone.Location("America/New_York")

	owner := testutil.CreateUser(t, db, "olivia", "owner", "+15550100")
	customer := testutil.CreateUser(t, db, "dana", "client", "+15550001")
	tech := testutil.CreateUser(t, db, "ana", "technician", "+15550007")
	tech2 := testutil.CreateUser(t, db, "ben", "technician", "+15550008")

	return &fixture{
		db: db,
		deps: uc.Deps{
			Repo:     repository.NewGormRepository(db),
			Clock:    timezone.FixedClock(time.Date(2025, 5, 20, 10, 0, 0, 0, loc), loc),
			Messages: notify.NewComposer("Spark & Flow Services"),
		},
		owner:    access.Principal{ID: owner.ID, Role: access.RoleOwner},
		customer: customer,
		tech:     tech,
		tech2:    tech2,
		sr:       testutil.CreateServiceRequest(t, db, customer),
	}
}

func (f *fixture) client() access.Principal {
	return access.Principal{ID: f.customer.ID, Role: access.RoleClient}
}

func (f *fixture) create(t *testing.T, date string, slot domain.TimeSlot, tech *models.User) *models.Appointment {
	t.Helper()

	in := uc.CreateAppointmentInput{
		Principal:        f.owner,
		ServiceRequestID: f.sr.ID,
		ScheduledDate:    date,
		TimeSlot:         slot,
	}
	if tech != nil {
		in.TechnicianID = &tech.ID
	}

	res, err := uc.NewCreateAppointment(f.deps).Execute(context.Background(), in)
	require.NoError(t, err)
	return res.Appointment
}

func TestCreateDetectsSlotConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	create := uc.NewCreateAppointment(f.deps)

	first, err := create.Execute(ctx, uc.CreateAppointmentInput{
		Principal:        f.owner,
		ServiceRequestID: f.sr.ID,
		ScheduledDate:    "2025-06-01",
		TimeSlot:         domain.SlotMorning,
		StartTime:        "08:00",
		EndTime:          "11:00",
		TechnicianID:     &f.tech.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", first.Appointment.Status)
	assert.Equal(t, "ana", first.Appointment.TechnicianName)
	require.Len(t, first.Notifications, 2)
	assert.Equal(t, notify.KindAppointmentConfirmed, first.Notifications[0].Kind)
	assert.Equal(t, "+15550001", first.Notifications[0].To)
	assert.Equal(t, notify.KindTechnicianAssigned, first.Notifications[1].Kind)
	assert.Equal(t, "+15550007", first.Notifications[1].To)

	var sr models.ServiceRequest
	require.NoError(t, f.db.First(&sr, f.sr.ID).Error)
	assert.Equal(t, "in_progress", sr.Status)
	assert.Equal(t, "2025-06-01", sr.ScheduledDate)
	assert.Equal(t, f.tech.ID, *sr.TechnicianID)

	_, err = create.Execute(ctx, uc.CreateAppointmentInput{
		Principal:        f.owner,
		ServiceRequestID: f.sr.ID,
		ScheduledDate:    "2025-06-01",
		TimeSlot:         domain.SlotMorning,
		TechnicianID:     &f.tech.ID,
	})
	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Conflicts, 1)
	assert.Equal(t, first.Appointment.ID, cerr.Conflicts[0].ID)

	// Overlapping explicit times in a different named slot are not a conflict.
	_, err = create.Execute(ctx, uc.CreateAppointmentInput{
		Principal:        f.owner,
		ServiceRequestID: f.sr.ID,
		ScheduledDate:    "2025-06-01",
		TimeSlot:         domain.SlotAfternoon,
		StartTime:        "10:00",
		EndTime:          "13:00",
		TechnicianID:     &f.tech.ID,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSlotIndexBacksConflictCheck(t *testing.T) {
	f := newFixture(t)
	first := f.create(t, "2025-06-01", domain.SlotMorning, f.tech)

	dup := models.Appointment{
		ServiceRequestID: f.sr.ID,
		TechnicianID:     &f.tech.ID,
		ScheduledDate:    "2025-06-01",
		TimeSlot:         "morning",
		Status:           "scheduled",
	}
	err := f.db.Create(&dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// A cancelled row no longer holds the slot.
	_, err = uc.NewCancelAppointment(f.deps).Execute(context.Background(), f.owner, first.ID, "")
	require.NoError(t, err)
	dup.ID = 0
	require.NoError(t, f.db.Create(&dup).Error)
}

func TestCreateRejectsPastAndToday(t *testing.T) {
	f := newFixture(t)
	create := uc.NewCreateAppointment(f.deps)

	for _, date := range []string{"2025-05-19", "2025-05-20", "2025-05-20T09:00:00Z"} {
		_, err := create.Execute(context.Background(), uc.CreateAppointmentInput{
			Principal:        f.owner,
			ServiceRequestID: f.sr.ID,
			ScheduledDate:    date,
			TimeSlot:         domain.SlotMorning,
		})
		assert.ErrorIs(t, err, domain.ErrPastDate, date)
	}
}

func TestCreateUnassignedNotifiesCustomerOnly(t *testing.T) {
	f := newFixture(t)

	res, err := uc.NewCreateAppointment(f.deps).Execute(context.Background(), uc.CreateAppointmentInput{
		Principal:        f.client(),
		ServiceRequestID: f.sr.ID,
		ScheduledDate:    "2025-06-02",
		TimeSlot:         domain.SlotEvening,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Appointment.TechnicianID)
	assert.Equal(t, f.customer.ID, *res.Appointment.UserID)
	assert.Equal(t, "plumbing", res.Appointment.ServiceType)
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, notify.KindAppointmentConfirmed, res.Notifications[0].Kind)

	want := time.Date(2025, 6, 1, 0, 0, 0, 0, f.deps.Clock.Location())
	assert.True(t, want.Equal(*res.Appointment.ReminderScheduled))
}

func TestCreateForbiddenForStranger(t *testing.T) {
	f := newFixture(t)
	stranger := testutil.CreateUser(t, f.db, "eve", "client", "+15550666")

	_, err := uc.NewCreateAppointment(f.deps).Execute(context.Background(), uc.CreateAppointmentInput{
		Principal:        access.Principal{ID: stranger.ID, Role: access.RoleClient},
		ServiceRequestID: f.sr.ID,
		ScheduledDate:    "2025-06-02",
		TimeSlot:         domain.SlotEvening,
	})
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestRescheduleKeepsIDAndLogsChange(t *testing.T) {
	f := newFixture(t)
	ap := f.create(t, "2025-06-01", domain.SlotMorning, f.tech)

	res, err := uc.NewRescheduleAppointment(f.deps).Execute(context.Background(), uc.RescheduleAppointmentInput{
		Principal:     f.client(),
		AppointmentID: ap.ID,
		ScheduledDate: "2025-06-03",
		TimeSlot:      domain.SlotAfternoon,
		Reason:        "travelling",
	})
	require.NoError(t, err)

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, ap.ID).Error)
	assert.Equal(t, ap.ID, res.Appointment.ID)
	assert.Equal(t, "rescheduled", stored.Status)
	assert.Equal(t, "2025-06-03", stored.ScheduledDate)
	assert.Equal(t, "afternoon", stored.TimeSlot)
	assert.False(t, stored.ReminderSent)
	assert.Contains(t, stored.Notes, "2025-06-01")
	assert.Contains(t, stored.Notes, "2025-06-03")
	assert.Contains(t, stored.Notes, "Reason: travelling")

	var count int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var sr models.ServiceRequest
	require.NoError(t, f.db.First(&sr, f.sr.ID).Error)
	assert.Equal(t, "rescheduled", sr.Status)
	assert.Equal(t, "2025-06-03", sr.ScheduledDate)

	require.Len(t, res.Notifications, 2)
	assert.Equal(t, "+15550001", res.Notifications[0].To)
	assert.Equal(t, "+15550007", res.Notifications[1].To)
}

func TestRescheduleToNewTechnicianNotifiesPrevious(t *testing.T) {
	f := newFixture(t)
	ap := f.create(t, "2025-06-01", domain.SlotMorning, f.tech)

	res, err := uc.NewRescheduleAppointment(f.deps).Execute(context.Background(), uc.RescheduleAppointmentInput{
		Principal:     f.owner,
		AppointmentID: ap.ID,
		ScheduledDate: "2025-06-01",
		TimeSlot:      domain.SlotMorning,
		TechnicianID:  &f.tech2.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, f.tech2.ID, *res.Appointment.TechnicianID)
	require.Len(t, res.Notifications, 3)
	assert.Equal(t, "+15550008", res.Notifications[1].To)
	assert.Equal(t, notify.KindReassigned, res.Notifications[2].Kind)
	assert.Equal(t, "+15550007", res.Notifications[2].To)

	var sr models.ServiceRequest
	require.NoError(t, f.db.First(&sr, f.sr.ID).Error)
	assert.Equal(t, "ben", sr.TechnicianName)
}

func TestRescheduleConflictChecksEffectiveTechnician(t *testing.T) {
	f := newFixture(t)
	mine := f.create(t, "2025-06-01", domain.SlotMorning, f.tech)
	taken := f.create(t, "2025-06-02", domain.SlotMorning, f.tech2)

	reschedule := uc.NewRescheduleAppointment(f.deps)
	ctx := context.Background()

	// Its own slot never conflicts with itself.
	_, err := reschedule.Execute(ctx, uc.RescheduleAppointmentInput{
		Principal:     f.owner,
		AppointmentID: mine.ID,
		ScheduledDate: "2025-06-01",
		TimeSlot:      domain.SlotMorning,
	})
	require.NoError(t, err)

	_, err = reschedule.Execute(ctx, uc.RescheduleAppointmentInput{
		Principal:     f.owner,
		AppointmentID: mine.ID,
		ScheduledDate: "2025-06-02",
		TimeSlot:      domain.SlotMorning,
		TechnicianID:  &f.tech2.ID,
	})
	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, taken.ID, cerr.Conflicts[0].ID)

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, mine.ID).Error)
	assert.Equal(t, f.tech.ID, *stored.TechnicianID)
}

func TestCancelForbiddenForOtherClient(t *testing.T) {
	f := newFixture(t)
	ap := f.create(t, "2025-06-01", domain.SlotMorning, f.tech)
	stranger := testutil.CreateUser(t, f.db, "eve", "client", "+15550666")

	_, err := uc.NewCancelAppointment(f.deps).Execute(
		context.Background(),
		access.Principal{ID: stranger.ID, Role: access.RoleClient},
		ap.ID,
		"",
	)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = uc.NewCancelAppointment(f.deps).Execute(
		context.Background(),
		access.Principal{ID: f.tech2.ID, Role: access.RoleTechnician},
		ap.ID,
		"",
	)
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestCancelledAppointmentNeverReminded(t *testing.T) {
	f := newFixture(t)
	ap := f.create(t, "2025-05-21", domain.SlotMorning, f.tech)

	res, err := uc.NewCancelAppointment(f.deps).Execute(context.Background(), f.client(), ap.ID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Appointment.Status)
	assert.True(t, res.Appointment.ReminderSent)
	require.Len(t, res.Notifications, 2)

	sweep, err := uc.NewProcessReminders(f.deps).Execute(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Equal(t, 0, sweep.Processed)
	assert.Empty(t, sweep.Notifications)

	_, err = uc.NewCancelAppointment(f.deps).Execute(context.Background(), f.client(), ap.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReminderSweepIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.create(t, "2025-05-21", domain.SlotMorning, f.tech)
	f.create(t, "2025-05-21", domain.SlotAfternoon, nil)
	f.create(t, "2025-06-10", domain.SlotMorning, f.tech)

	sweep := uc.NewProcessReminders(f.deps)

	first, err := sweep.Execute(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Processed)
	require.Len(t, first.Notifications, 2)
	assert.Contains(t, first.Notifications[0].Body, "with ana")
	assert.NotContains(t, first.Notifications[1].Body, " with ")

	second, err := sweep.Execute(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Processed)
	assert.Empty(t, second.Notifications)
	assert.Empty(t, second.Results)
}

func TestReminderSweepIsolatesFailures(t *testing.T) {
	f := newFixture(t)
	orphanSR := testutil.CreateServiceRequest(t, f.db, nil)
	ok := f.create(t, "2025-05-21", domain.SlotMorning, f.tech)

	orphan := models.Appointment{
		ServiceRequestID:  orphanSR.ID,
		ScheduledDate:     "2025-05-21",
		TimeSlot:          "evening",
		Status:            "scheduled",
		ReminderScheduled: ok.ReminderScheduled,
	}
	require.NoError(t, f.db.Create(&orphan).Error)
	require.NoError(t, f.db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, f.db.Delete(&models.ServiceRequest{}, orphanSR.ID).Error)

	sweep, err := uc.NewProcessReminders(f.deps).Execute(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Equal(t, 1, sweep.Processed)
	require.Len(t, sweep.Results, 2)

	byID := map[uint]uc.ReminderResult{}
	for _, r := range sweep.Results {
		byID[r.AppointmentID] = r
	}
	assert.Equal(t, "success", byID[ok.ID].Status)
	assert.Equal(t, "error", byID[orphan.ID].Status)
	assert.NotEmpty(t, byID[orphan.ID].Error)
}

func TestRescheduleRearmsReminder(t *testing.T) {
	f := newFixture(t)
	ap := f.create(t, "2025-05-21", domain.SlotMorning, f.tech)

	sweep := uc.NewProcessReminders(f.deps)
	res, err := sweep.Execute(context.Background(), f.owner)
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)

	_, err = uc.NewRescheduleAppointment(f.deps).Execute(context.Background(), uc.RescheduleAppointmentInput{
		Principal:     f.owner,
		AppointmentID: ap.ID,
		ScheduledDate: "2025-05-21",
		TimeSlot:      domain.SlotEvening,
	})
	require.NoError(t, err)

	res, err = sweep.Execute(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
}

func TestProcessRemindersRequiresStaff(t *testing.T) {
	f := newFixture(t)
	_, err := uc.NewProcessReminders(f.deps).Execute(context.Background(), f.client())
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestCompleteBooksIncome(t *testing.T) {
	f := newFixture(t)
	ap := f.create(t, "2025-06-01", domain.SlotMorning, f.tech)
	cost := 275.5

	_, err := uc.NewCompleteAppointment(f.deps).Execute(context.Background(), uc.CompleteAppointmentInput{
		Principal:     access.Principal{ID: f.tech2.ID, Role: access.RoleTechnician},
		AppointmentID: ap.ID,
	})
	assert.ErrorIs(t, err, access.ErrForbidden)

	res, err := uc.NewCompleteAppointment(f.deps).Execute(context.Background(), uc.CompleteAppointmentInput{
		Principal:     access.Principal{ID: f.tech.ID, Role: access.RoleTechnician},
		AppointmentID: ap.ID,
		Notes:         "replaced valve",
		Cost:          &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Appointment.Status)
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, notify.KindCompleted, res.Notifications[0].Kind)

	var sr models.ServiceRequest
	require.NoError(t, f.db.First(&sr, f.sr.ID).Error)
	assert.Equal(t, "completed", sr.Status)
	assert.Equal(t, "replaced valve", sr.CompletionNotes)
	assert.NotNil(t, sr.CompletedDate)

	var txs []models.Transaction
	require.NoError(t, f.db.Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.Equal(t, "income", txs[0].Type)
	assert.Equal(t, "plumbing-service", txs[0].Category)
	assert.Equal(t, 275.5, txs[0].Amount)
}

func TestContactTechnician(t *testing.T) {
	f := newFixture(t)
	ap := f.create(t, "2025-06-01", domain.SlotMorning, f.tech)
	contact := uc.NewContactTechnician(f.deps)

	_, err := contact.Execute(context.Background(), f.owner, ap.ID, "")
	assert.ErrorIs(t, err, access.ErrForbidden)

	res, err := contact.Execute(context.Background(), f.client(), ap.ID, "please call before noon")
	require.NoError(t, err)
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, "+15550007", res.Notifications[0].To)
	assert.Contains(t, res.Notifications[0].Body, "please call before noon")
	assert.Contains(t, res.Appointment.Notes, "get in touch")

	unassigned := f.create(t, "2025-06-02", domain.SlotMorning, nil)
	_, err = contact.Execute(context.Background(), f.client(), unassigned.ID, "")
	assert.ErrorIs(t, err, domain.ErrNoTechnicianPhone)
}

func TestListRangeIsRoleScoped(t *testing.T) {
	f := newFixture(t)
	f.create(t, "2025-06-01", domain.SlotMorning, f.tech)
	f.create(t, "2025-06-02", domain.SlotMorning, f.tech2)
	f.create(t, "2025-07-01", domain.SlotMorning, f.tech)

	other := testutil.CreateUser(t, f.db, "eve", "client", "+15550666")
	list := uc.NewListAppointmentsInRange(f.deps)
	ctx := context.Background()

	all, err := list.Execute(ctx, f.owner, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := list.Execute(ctx, access.Principal{ID: f.tech.ID, Role: access.RoleTechnician}, "2025-06-01", "2025-07-31")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	own, err := list.Execute(ctx, f.client(), "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	none, err := list.Execute(ctx, access.Principal{ID: other.ID, Role: access.RoleClient}, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = list.Execute(ctx, f.owner, "", "2025-06-30")
	assert.ErrorIs(t, err, uc.ErrInvalidRange)
	_, err = list.Execute(ctx, f.owner, "2025-06-30", "2025-06-01")
	assert.ErrorIs(t, err, uc.ErrInvalidRange)
	_, err = list.Execute(ctx, f.owner, "soon", "2025-06-01")
	assert.ErrorIs(t, err, timezone.ErrInvalidDate)
}

func TestAvailability(t *testing.T) {
	f := newFixture(t)
	f.create(t, "2025-06-01", domain.SlotMorning, f.tech)

	slots, err := uc.NewGetAvailability(f.deps).Execute(context.Background(), f.tech.ID, "2025-06-01")
	require.NoError(t, err)

	got := map[domain.TimeSlot]bool{}
	for _, s := range slots {
		got[s.TimeSlot] = s.Available
	}
	assert.Equal(t, map[domain.TimeSlot]bool{
		domain.SlotMorning:   false,
		domain.SlotAfternoon: true,
		domain.SlotEvening:   true,
		domain.SlotAnytime:   true,
	}, got)

	_, err = uc.NewGetAvailability(f.deps).Execute(context.Background(), f.owner.ID, "2025-06-01")
	assert.ErrorIs(t, err, domain.ErrTechnicianNotFound)
}

type emptyDay struct{}

func (emptyDay) ListTechnicianDay(context.Context, uint, string) ([]models.Appointment, error) {
	return nil, nil
}

func TestTranslateWriteErrorAlwaysCarriesConflictList(t *testing.T) {
	b := domain.Booking{TechnicianID: 3, ScheduledDate: "2025-06-01", TimeSlot: domain.SlotMorning}

	err := uc.TranslateWriteError(context.Background(), emptyDay{}, b, "create", gorm.ErrDuplicatedKey)

	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.NotNil(t, cerr.Conflicts)
	assert.Empty(t, cerr.Conflicts)
}
