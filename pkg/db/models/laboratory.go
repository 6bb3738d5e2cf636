package models

// Laboratory is a physical lab room owned by a department. At most one
// custodian is in charge at a time; the invariant is enforced at assignment
// time, not by the schema.
type Laboratory struct {
	LabID      int64       `gorm:"column:lab_id;primaryKey;autoIncrement"`
	LabName    string      `gorm:"column:lab_name;not null"`
	Location   string      `gorm:"column:location"`
	DeptID     *int64      `gorm:"column:dept_id"`
	InChargeID *int64      `gorm:"column:in_charge_id"`
	Department *Department `gorm:"foreignKey:DeptID;references:DeptID"`
	InCharge   *User       `gorm:"foreignKey:InChargeID;references:UserID"`
}

func (Laboratory) TableName() string { return "laboratories" }
