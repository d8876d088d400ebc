package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/utils"
)

// MemoryStore giữ toàn bộ dữ liệu trong RAM. Atomic làm việc trên bản sao
// và chỉ thay thế dữ liệu thật khi fn thành công.
type MemoryStore struct {
	mu   sync.Mutex
	data *memData
	now  func() time.Time
}

type memData struct {
	seq         uint
	users       map[uint]models.User
	hotels      map[uint]models.Hotel
	rooms       map[uint]models.Room
	roomNumbers map[uint]models.RoomNumber
	reserved    map[uint]utils.DaySet
	bookings    map[uint]models.Booking
	workers     map[uint]models.Worker
	moderators  map[uint]models.Moderator
	cleaning    []models.CleaningRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: &memData{
			users:       make(map[uint]models.User),
			hotels:      make(map[uint]models.Hotel),
			rooms:       make(map[uint]models.Room),
			roomNumbers: make(map[uint]models.RoomNumber),
			reserved:    make(map[uint]utils.DaySet),
			bookings:    make(map[uint]models.Booking),
			workers:     make(map[uint]models.Worker),
			moderators:  make(map[uint]models.Moderator),
		},
		now: time.Now,
	}
}

func (d *memData) clone() *memData {
	c := &memData{
		seq:         d.seq,
		users:       make(map[uint]models.User, len(d.users)),
		hotels:      make(map[uint]models.Hotel, len(d.hotels)),
		rooms:       make(map[uint]models.Room, len(d.rooms)),
		roomNumbers: make(map[uint]models.RoomNumber, len(d.roomNumbers)),
		reserved:    make(map[uint]utils.DaySet, len(d.reserved)),
		bookings:    make(map[uint]models.Booking, len(d.bookings)),
		workers:     make(map[uint]models.Worker, len(d.workers)),
		moderators:  make(map[uint]models.Moderator, len(d.moderators)),
		cleaning:    append([]models.CleaningRecord(nil), d.cleaning...),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.hotels {
		v.Photos = append(v.Photos[:0:0], v.Photos...)
		c.hotels[k] = v
	}
	for k, v := range d.rooms {
		c.rooms[k] = v
	}
	for k, v := range d.roomNumbers {
		c.roomNumbers[k] = v
	}
	for k, v := range d.reserved {
		c.reserved[k] = v.Clone()
	}
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	for k, v := range d.workers {
		c.workers[k] = v
	}
	for k, v := range d.moderators {
		v.AssignedHotels = append(v.AssignedHotels[:0:0], v.AssignedHotels...)
		c.moderators[k] = v
	}
	return c
}

func (s *MemoryStore) Atomic(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.data.clone()
	if err := fn(&memTx{data: staged, now: s.now}); err != nil {
		return err
	}
	s.data = staged
	return nil
}

// run chạy một thao tác đơn lẻ trên dữ liệu thật
func (s *MemoryStore) run(fn func(tx *memTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memTx{data: s.data, now: s.now})
}

// memTx thao tác trực tiếp lên một memData; không tự khóa
type memTx struct {
	data *memData
	now  func() time.Time
}

func (t *memTx) nextID() uint {
	t.data.seq++
	return t.data.seq
}

func (t *memTx) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := t.data.users[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	return &u, nil
}

func (t *memTx) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(email)
	for _, u := range t.data.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

func (t *memTx) GetUserByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	for _, u := range t.data.users {
		if googleID != "" && u.GoogleID == googleID {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

func (t *memTx) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if _, err := t.GetUserByEmail(ctx, user.Email); err == nil {
		return apperrors.ErrDuplicateRecord
	}
	user.ID = t.nextID()
	user.CreatedAt = t.now()
	user.UpdatedAt = user.CreatedAt
	t.data.users[user.ID] = *user
	return nil
}

func (t *memTx) UpdateUserRole(_ context.Context, userID uint, role int) error {
	u, ok := t.data.users[userID]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	u.Role = role
	u.UpdatedAt = t.now()
	t.data.users[userID] = u
	return nil
}

func (t *memTx) GetHotel(_ context.Context, id uint) (*models.Hotel, error) {
	h, ok := t.data.hotels[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	h.Photos = append(h.Photos[:0:0], h.Photos...)
	return &h, nil
}

func (t *memTx) ListHotels(_ context.Context) ([]models.Hotel, error) {
	hotels := make([]models.Hotel, 0, len(t.data.hotels))
	for _, h := range t.data.hotels {
		hotels = append(hotels, h)
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].ID < hotels[j].ID })
	return hotels, nil
}

func (t *memTx) CreateHotel(_ context.Context, hotel *models.Hotel) error {
	hotel.ID = t.nextID()
	hotel.CreatedAt = t.now()
	hotel.UpdatedAt = hotel.CreatedAt
	stored := *hotel
	stored.Rooms = nil
	t.data.hotels[hotel.ID] = stored
	return nil
}

func (t *memTx) AddHotelPhoto(_ context.Context, hotelID uint, url string) error {
	h, ok := t.data.hotels[hotelID]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	h.Photos = append(append(h.Photos[:0:0], h.Photos...), url)
	t.data.hotels[hotelID] = h
	return nil
}

func (t *memTx) roomWithNumbers(r models.Room) models.Room {
	r.RoomNumbers = nil
	for _, rn := range t.data.roomNumbers {
		if rn.RoomID == r.ID {
			r.RoomNumbers = append(r.RoomNumbers, rn)
		}
	}
	sort.Slice(r.RoomNumbers, func(i, j int) bool { return r.RoomNumbers[i].Number < r.RoomNumbers[j].Number })
	return r
}

func (t *memTx) GetRoom(_ context.Context, id uint) (*models.Room, error) {
	r, ok := t.data.rooms[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	r = t.roomWithNumbers(r)
	return &r, nil
}

func (t *memTx) ListRooms(_ context.Context, filter RoomFilter) ([]models.Room, error) {
	var rooms []models.Room
	for _, r := range t.data.rooms {
		if filter.HotelID != 0 && r.HotelID != filter.HotelID {
			continue
		}
		if filter.NeedsCleaning != nil && r.Cleaning.NeedsCleaning != *filter.NeedsCleaning {
			continue
		}
		rooms = append(rooms, t.roomWithNumbers(r))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (t *memTx) CreateRoom(_ context.Context, room *models.Room) error {
	if _, ok := t.data.hotels[room.HotelID]; !ok {
		return apperrors.ErrRecordNotFound
	}
	room.ID = t.nextID()
	room.CreatedAt = t.now()
	room.UpdatedAt = room.CreatedAt
	for i := range room.RoomNumbers {
		rn := &room.RoomNumbers[i]
		rn.ID = t.nextID()
		rn.RoomID = room.ID
		t.data.roomNumbers[rn.ID] = *rn
		t.data.reserved[rn.ID] = utils.NewDaySet()
	}
	stored := *room
	stored.RoomNumbers = nil
	stored.CleaningHistory = nil
	t.data.rooms[room.ID] = stored
	return nil
}

func (t *memTx) SetRoomCleaning(_ context.Context, roomID uint, state models.CleaningState) error {
	r, ok := t.data.rooms[roomID]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	r.Cleaning = state
	r.UpdatedAt = t.now()
	t.data.rooms[roomID] = r
	return nil
}

func (t *memTx) AddCleaningRecord(_ context.Context, record *models.CleaningRecord) error {
	record.ID = t.nextID()
	t.data.cleaning = append(t.data.cleaning, *record)
	return nil
}

func (t *memTx) CleaningHistory(_ context.Context, roomID uint) ([]models.CleaningRecord, error) {
	var records []models.CleaningRecord
	for _, rec := range t.data.cleaning {
		if rec.RoomID == roomID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (t *memTx) LockRoomNumber(_ context.Context, roomID uint, number int) (*models.RoomNumber, error) {
	for _, rn := range t.data.roomNumbers {
		if rn.RoomID == roomID && rn.Number == number {
			rn := rn
			return &rn, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

func (t *memTx) ReservedDays(_ context.Context, roomNumberID uint, from, to utils.Day) (utils.DaySet, error) {
	set := utils.NewDaySet()
	for d := range t.data.reserved[roomNumberID] {
		if !d.Before(from) && !d.After(to) {
			set.Add(d)
		}
	}
	return set, nil
}

func (t *memTx) AddReservedDays(_ context.Context, roomNumberID, _ uint, days []utils.Day) error {
	if _, ok := t.data.roomNumbers[roomNumberID]; !ok {
		return apperrors.ErrRecordNotFound
	}
	set, ok := t.data.reserved[roomNumberID]
	if !ok {
		set = utils.NewDaySet()
		t.data.reserved[roomNumberID] = set
	}
	if _, taken := set.ContainsAny(days); taken {
		return apperrors.ErrDayTaken
	}
	set.Add(days...)
	return nil
}

func (t *memTx) RemoveReservedDays(_ context.Context, roomNumberID uint, days []utils.Day) error {
	if set, ok := t.data.reserved[roomNumberID]; ok {
		set.Remove(days...)
	}
	return nil
}

func (t *memTx) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := t.data.bookings[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	return &b, nil
}

func (t *memTx) ListBookings(_ context.Context, filter BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	for _, b := range t.data.bookings {
		if filter.UserID != 0 && b.UserID != filter.UserID {
			continue
		}
		if filter.HotelID != 0 && b.HotelID != filter.HotelID {
			continue
		}
		if filter.RoomID != 0 && b.RoomID != filter.RoomID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.EndBefore != nil && !b.DateEnd.Before(*filter.EndBefore) {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID > bookings[j].ID })
	return bookings, nil
}

func (t *memTx) CreateBooking(_ context.Context, booking *models.Booking) error {
	booking.ID = t.nextID()
	booking.CreatedAt = t.now()
	booking.UpdatedAt = booking.CreatedAt
	t.data.bookings[booking.ID] = *booking
	return nil
}

func (t *memTx) TransitionBooking(_ context.Context, booking *models.Booking, from string) error {
	current, ok := t.data.bookings[booking.ID]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	if current.Status != from {
		return apperrors.ErrStatusChanged
	}
	current.Status = booking.Status
	current.CancelledAt = booking.CancelledAt
	current.CompletedAt = booking.CompletedAt
	current.UpdatedAt = t.now()
	t.data.bookings[booking.ID] = current
	booking.UpdatedAt = current.UpdatedAt
	return nil
}

func (t *memTx) GetWorker(_ context.Context, id uint) (*models.Worker, error) {
	w, ok := t.data.workers[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	return &w, nil
}

func (t *memTx) CreateWorker(_ context.Context, worker *models.Worker) error {
	worker.ID = t.nextID()
	worker.CreatedAt = t.now()
	worker.UpdatedAt = worker.CreatedAt
	t.data.workers[worker.ID] = *worker
	return nil
}

func (t *memTx) GetModeratorByUser(_ context.Context, userID uint) (*models.Moderator, error) {
	for _, m := range t.data.moderators {
		if m.UserID == userID {
			m := m
			return &m, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

func (t *memTx) CreateModerator(ctx context.Context, moderator *models.Moderator) error {
	if _, err := t.GetModeratorByUser(ctx, moderator.UserID); err == nil {
		return apperrors.ErrDuplicateRecord
	}
	// cùng hook với gorm BeforeSave
	moderator.EnsureAssigned()
	moderator.ID = t.nextID()
	moderator.CreatedAt = t.now()
	moderator.UpdatedAt = moderator.CreatedAt
	t.data.moderators[moderator.ID] = *moderator
	return nil
}

var _ Store = (*MemoryStore)(nil)
