package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// storeDocument поля документа магазина, относящиеся к расписанию
type storeDocument struct {
	StoreOpen      string      `firestore:"storeOpen"`
	StoreClose     string      `firestore:"storeClose"`
	LunchStart     string      `firestore:"lunchStart"`
	LunchEnd       string      `firestore:"lunchEnd"`
	TimeInterval   interface{} `firestore:"timeInterval"`
	NonWorkingDays []string    `firestore:"nonWorkingDays"`
	CalendarID     string      `firestore:"calendarId"`
}

// FirestoreRepository читает расписание из документов коллекции магазинов
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreRepository создает репозиторий поверх коллекции collection
func NewFirestoreRepository(client *firestore.Client, collection string) *FirestoreRepository {
	return &FirestoreRepository{client: client, collection: collection}
}

// GetByStoreID читает документ {collection}/{storeID}.
// Пустые или некорректные поля возвращаются как nil и заменяются значениями по умолчанию выше
func (r *FirestoreRepository) GetByStoreID(ctx context.Context, storeID string) (*domain.StoreSchedule, error) {
	snap, err := r.client.Collection(r.collection).Doc(storeID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("%w: GetByStoreID - get document: %v", ErrExecQuery, err)
	}

	var doc storeDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: GetByStoreID - decode document: %v", ErrScanRow, err)
	}

	return doc.toDomain(storeID), nil
}

func (d *storeDocument) toDomain(storeID string) *domain.StoreSchedule {
	schedule := &domain.StoreSchedule{
		StoreID:        storeID,
		CalendarID:     strings.TrimSpace(d.CalendarID),
		OpenTime:       parseDocTime(d.StoreOpen),
		CloseTime:      parseDocTime(d.StoreClose),
		LunchStart:     parseDocTime(d.LunchStart),
		LunchEnd:       parseDocTime(d.LunchEnd),
		NonWorkingDays: d.NonWorkingDays,
	}

	if minutes, ok := parseInterval(d.TimeInterval); ok {
		schedule.SlotIntervalMinutes = &minutes
	}

	return schedule
}

func parseDocTime(s string) *types.TimeString {
	if s == "" {
		return nil
	}
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		return nil
	}
	return &t
}

// parseInterval timeInterval хранится то числом, то строкой
func parseInterval(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		minutes, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return minutes, true
	default:
		return 0, false
	}
}
