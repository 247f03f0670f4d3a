package routes

import (
	"time"

	"residency-server/models"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type userView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

func newUserView(u models.User) userView {
	return userView{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role,
		IsSuperAdmin: u.IsSuperAdmin,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		CreatedAt:    u.CreatedAt,
	}
}

type towerView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
}

type amenityView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	IsBookable  bool      `json:"is_bookable"`
}

type unitView struct {
	ID           uuid.UUID   `json:"id"`
	TowerID      uuid.UUID   `json:"tower_id"`
	TowerName    string      `json:"tower_name"`
	UnitNumber   string      `json:"unit_number"`
	Floor        int         `json:"floor"`
	Status       string      `json:"status"`
	MonthlyRent  string      `json:"monthly_rent"`
	Amenities    []string    `json:"amenities"`
	AmenityIDs   []uuid.UUID `json:"amenity_ids"`
	Photos       []string    `json:"photos"`
	NearbyPlaces []string    `json:"nearby_places"`
}

func newUnitView(u models.Unit) unitView {
	v := unitView{
		ID:           u.ID,
		TowerID:      u.TowerID,
		TowerName:    "N/A",
		UnitNumber:   u.UnitNumber,
		Floor:        u.Floor,
		Status:       u.Status,
		MonthlyRent:  u.MonthlyRent.StringFixed(2),
		Amenities:    []string{},
		AmenityIDs:   []uuid.UUID{},
		Photos:       models.Strings(u.Photos),
		NearbyPlaces: models.Strings(u.NearbyPlaces),
	}
	if u.Tower != nil {
		v.TowerName = u.Tower.Name
	}
	for _, a := range u.Amenities {
		v.Amenities = append(v.Amenities, a.Name)
		v.AmenityIDs = append(v.AmenityIDs, a.ID)
	}
	return v
}

type bookingView struct {
	ID         uuid.UUID         `json:"id"`
	Type       models.TargetKind `json:"type"`
	TargetID   uuid.UUID         `json:"target_id"`
	TargetName string            `json:"target_name"`
	Status     string            `json:"status"`
	StartTime  time.Time         `json:"start_time"`
	EndTime    time.Time         `json:"end_time"`
	UserEmail  string            `json:"user_email"`
}

func newBookingView(b models.Booking) bookingView {
	target := b.Target()
	v := bookingView{
		ID:         b.ID,
		Type:       target.Kind,
		TargetID:   target.ID,
		TargetName: b.TargetName(),
		Status:     b.Status,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
	}
	if b.User != nil {
		v.UserEmail = b.User.Email
	}
	return v
}

type leaseView struct {
	ID         uuid.UUID `json:"id"`
	UnitID     uuid.UUID `json:"unit_id"`
	UnitNumber string    `json:"unit_number"`
	TowerName  string    `json:"tower_name"`
	RentAmount string    `json:"rent_amount"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Status     string    `json:"status"`
}

func newLeaseView(l models.Lease) leaseView {
	v := leaseView{
		ID:         l.ID,
		UnitID:     l.UnitID,
		TowerName:  "N/A",
		RentAmount: l.RentAmount.StringFixed(2),
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		Status:     l.Status,
	}
	if l.Unit != nil {
		v.UnitNumber = l.Unit.UnitNumber
		if l.Unit.Tower != nil {
			v.TowerName = l.Unit.Tower.Name
		}
	}
	return v
}

type paymentView struct {
	ID            uuid.UUID `json:"id"`
	LeaseID       uuid.UUID `json:"lease_id"`
	Amount        string    `json:"amount"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	ResidentEmail string    `json:"resident_email"`
	UnitNumber    string    `json:"unit_number"`
	TowerName     string    `json:"tower_name"`
}

func newPaymentView(p models.Payment) paymentView {
	v := paymentView{
		ID:            p.ID,
		LeaseID:       p.LeaseID,
		Amount:        p.Amount.StringFixed(2),
		Date:          p.PaymentDate,
		Type:          p.PaymentType,
		Status:        p.Status,
		ResidentEmail: "Unknown",
		UnitNumber:    "Unknown",
		TowerName:     "N/A",
	}
	if p.Lease == nil {
		return v
	}
	if p.Lease.Resident != nil {
		v.ResidentEmail = p.Lease.Resident.Email
	}
	if p.Lease.Unit != nil {
		v.UnitNumber = p.Lease.Unit.UnitNumber
		if p.Lease.Unit.Tower != nil {
			v.TowerName = p.Lease.Unit.Tower.Name
		}
	}
	return v
}

type tenantView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Unit       string    `json:"unit"`
	LeaseStart string    `json:"lease_start"`
	LeaseEnd   string    `json:"lease_end"`
}

func newTenantView(l models.Lease) tenantView {
	v := tenantView{
		ID:         l.ResidentID,
		LeaseStart: l.StartDate.Format(dateLayout),
		LeaseEnd:   l.EndDate.Format(dateLayout),
	}
	if l.Resident != nil {
		v.Name = l.Resident.FullName()
		v.Email = l.Resident.Email
	}
	if l.Unit != nil {
		v.Unit = l.Unit.UnitNumber
	}
	return v
}

func mapViews[M any, V any](items []M, view func(M) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, view(item))
	}
	return out
}
