package models

import "time"

// CleaningState là trạng thái dọn phòng nhúng trong Room
type CleaningState struct {
	IsCleaned     bool       `json:"isCleaned" gorm:"column:is_cleaned;default:true"`
	NeedsCleaning bool       `json:"needsCleaning" gorm:"column:needs_cleaning;default:false"`
	LastCleanedAt *time.Time `json:"lastCleanedAt,omitempty" gorm:"column:last_cleaned_at"`
}

// InitialCleaningState: phòng mới tạo được coi là đã dọn
func InitialCleaningState() CleaningState {
	return CleaningState{IsCleaned: true, NeedsCleaning: false}
}

// Cleaned trả về trạng thái sau khi dọn xong lúc at
func (s CleaningState) Cleaned(at time.Time) CleaningState {
	return CleaningState{IsCleaned: true, NeedsCleaning: false, LastCleanedAt: &at}
}

// Dirty trả về trạng thái cần dọn, giữ nguyên LastCleanedAt
func (s CleaningState) Dirty() CleaningState {
	return CleaningState{IsCleaned: false, NeedsCleaning: true, LastCleanedAt: s.LastCleanedAt}
}

// CleaningRecord là một dòng lịch sử dọn phòng.
// Cùng một bảng phục vụ cả Room.CleaningHistory và Worker.CleanedRooms.
type CleaningRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RoomID    uint      `json:"roomId" gorm:"index;not null"`
	WorkerID  uint      `json:"cleanedBy" gorm:"index;not null"`
	CleanedAt time.Time `json:"cleanedAt" gorm:"not null"`
}
