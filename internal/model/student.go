package model

// Student 研究生表 — 对应 students
// 本核心只读；由注册子系统负责维护
type Student struct {
	StudentID     string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	MatricNo      string       `gorm:"type:varchar(20);not null;uniqueIndex"          json:"matric_no"`
	Name          string       `gorm:"type:varchar(100);not null"                     json:"name"`
	Email         string       `gorm:"type:varchar(255);not null"                     json:"email"`
	Status        EntityStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Department    string       `gorm:"type:varchar(100);not null"                     json:"department"`
	Program       string       `gorm:"type:varchar(100);not null"                     json:"program"`
	AcademicLevel string       `gorm:"type:varchar(20);not null"                      json:"academic_level"` // master | phd
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
