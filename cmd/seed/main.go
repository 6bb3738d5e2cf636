package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/config"
	"github.com/campuslabs/labtrack-backend/pkg/db"
	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	"github.com/campuslabs/labtrack-backend/pkg/logger"
	"github.com/campuslabs/labtrack-backend/pkg/security"
)

// Seeds the reference tables and the default admin/custodian accounts.
// Safe to run repeatedly: existing rows are matched by their natural key
// and left untouched.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := run(ctx, dbClient.DB(), cfg); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seeding complete")
}

func run(ctx context.Context, conn *gorm.DB, cfg *config.Config) error {
	conn = conn.WithContext(ctx)

	campuses := map[string]int64{}
	for _, name := range []string{"Main Campus", "Satellite Campus"} {
		row := models.Campus{CampusName: name}
		if err := firstOrCreate(conn, &row, "campus_name = ?", name); err != nil {
			return fmt.Errorf("seeding campus %q: %w", name, err)
		}
		campuses[name] = row.CampusID
	}

	officeTypes := map[string]int64{}
	for _, name := range []string{"Academic", "Administrative", "Laboratory", "Support Services"} {
		row := models.OfficeType{TypeName: name}
		if err := firstOrCreate(conn, &row, "type_name = ?", name); err != nil {
			return fmt.Errorf("seeding office type %q: %w", name, err)
		}
		officeTypes[name] = row.TypeID
	}

	mainCampus := campuses["Main Campus"]
	departments := []struct {
		name     string
		office   string
		designee string
	}{
		{"College of Information Technology", "Academic", "Dr. John Doe"},
		{"College of Engineering", "Academic", "Dr. Jane Smith"},
		{"College of Business Administration", "Academic", "Dr. Robert Johnson"},
		{"College of Arts and Sciences", "Academic", "Dr. Emily Brown"},
		{"College of Education", "Academic", "Dr. Michael Davis"},
		{"College of Nursing", "Academic", "Dr. Sarah Wilson"},
		{"Computer Science Department", "Academic", "Dr. Alex Thompson"},
		{"Information Technology Department", "Laboratory", "Dr. Lisa Anderson"},
		{"Mathematics Department", "Academic", "Dr. David Martinez"},
		{"Physics Department", "Academic", "Dr. Jennifer Taylor"},
		{"Chemistry Department", "Academic", "Dr. William Brown"},
		{"Biology Department", "Academic", "Dr. Amanda Garcia"},
		{"English Department", "Academic", "Dr. Christopher Lee"},
		{"Social Sciences Department", "Academic", "Dr. Patricia White"},
		{"Humanities Department", "Academic", "Dr. Richard Moore"},
		{"Administrative Office", "Administrative", "Ms. Barbara Harris"},
		{"Library Services", "Support Services", "Ms. Nancy Clark"},
		{"Student Affairs", "Administrative", "Mr. James Rodriguez"},
		{"Finance Office", "Administrative", "Mr. Daniel Martinez"},
		{"Human Resources", "Administrative", "Ms. Linda Lewis"},
	}
	deptIDs := map[string]int64{}
	for _, dept := range departments {
		officeTypeID := officeTypes[dept.office]
		row := models.Department{
			DeptName:     dept.name,
			CampusID:     &mainCampus,
			OfficeTypeID: &officeTypeID,
			DesigneeName: dept.designee,
		}
		if err := firstOrCreate(conn, &row, "dept_name = ?", dept.name); err != nil {
			return fmt.Errorf("seeding department %q: %w", dept.name, err)
		}
		deptIDs[dept.name] = row.DeptID
	}

	itDept := deptIDs["College of Information Technology"]
	itSupportDept := deptIDs["Information Technology Department"]
	labs := []struct {
		name     string
		location string
		deptID   int64
	}{
		{"Computer Laboratory 1", "Building A, Room 101", itDept},
		{"Computer Laboratory 2", "Building A, Room 102", itDept},
		{"Networking Laboratory", "Building A, Room 103", itSupportDept},
		{"Database Laboratory", "Building A, Room 104", itDept},
		{"Software Development Lab", "Building A, Room 105", itDept},
		{"IT Support Center", "Building B, Room 201", itSupportDept},
	}
	labIDs := map[string]int64{}
	for _, lab := range labs {
		deptID := lab.deptID
		row := models.Laboratory{LabName: lab.name, Location: lab.location, DeptID: &deptID}
		if err := firstOrCreate(conn, &row, "lab_name = ?", lab.name); err != nil {
			return fmt.Errorf("seeding laboratory %q: %w", lab.name, err)
		}
		labIDs[lab.name] = row.LabID
	}

	workstations := []struct {
		name string
		lab  string
	}{
		{"WS-PC001", "Computer Laboratory 1"},
		{"WS-PC002", "Computer Laboratory 1"},
		{"WS-NET001", "Networking Laboratory"},
	}
	for _, ws := range workstations {
		labID := labIDs[ws.lab]
		row := models.Workstation{WorkstationName: ws.name, LabID: &labID}
		if err := firstOrCreate(conn, &row, "workstation_name = ?", ws.name); err != nil {
			return fmt.Errorf("seeding workstation %q: %w", ws.name, err)
		}
	}

	deviceTypes := map[string]int64{}
	for _, name := range []string{"Computer", "Monitor", "Printer", "Keyboard", "Mouse"} {
		row := models.DeviceType{DeviceTypeName: name}
		if err := firstOrCreate(conn, &row, "device_type_name = ?", name); err != nil {
			return fmt.Errorf("seeding device type %q: %w", name, err)
		}
		deviceTypes[name] = row.DeviceTypeID
	}

	units := []struct {
		name       string
		deviceType string
	}{
		{"System Unit", "Computer"},
		{"Desktop Computer", "Computer"},
		{"Laptop", "Computer"},
		{"LED Monitor", "Monitor"},
		{"Laser Printer", "Printer"},
		{"Inkjet Printer", "Printer"},
		{"Gaming Keyboard", "Keyboard"},
		{"Standard Keyboard", "Keyboard"},
		{"Optical Mouse", "Mouse"},
		{"Wireless Mouse", "Mouse"},
	}
	for _, unit := range units {
		deviceTypeID := deviceTypes[unit.deviceType]
		row := models.Unit{UnitName: unit.name, DeviceTypeID: &deviceTypeID}
		if err := firstOrCreate(conn, &row, "unit_name = ?", unit.name); err != nil {
			return fmt.Errorf("seeding unit %q: %w", unit.name, err)
		}
	}

	tasks := []struct {
		name     string
		category string
	}{
		{"Check and clean computer equipment", "Equipment Maintenance"},
		{"Verify internet connectivity", "Network"},
		{"Organize workstation area", "Housekeeping"},
		{"Check printer and supplies", "Equipment Maintenance"},
		{"Update software if needed", "Software"},
		{"Monitor server performance", "System Administration"},
		{"Backup important data", "Data Management"},
		{"Check security systems", "Security"},
	}
	for _, task := range tasks {
		row := models.StandardTask{TaskName: task.name, Category: task.category}
		if err := firstOrCreate(conn, &row, "task_name = ?", task.name); err != nil {
			return fmt.Errorf("seeding standard task %q: %w", task.name, err)
		}
	}

	if err := seedUser(conn, cfg, "admin@cit.edu", "CIT Administrator", "admin123", enums.RoleAdmin, nil); err != nil {
		return err
	}
	custodianLab := labIDs["Computer Laboratory 1"]
	if err := seedUser(conn, cfg, "custodian@cit.edu", "CIT Custodian", "custodian123", enums.RoleCustodian, &custodianLab); err != nil {
		return err
	}

	return nil
}

func firstOrCreate(conn *gorm.DB, row any, query string, args ...any) error {
	err := conn.Where(query, args...).First(row).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return conn.Create(row).Error
}

func seedUser(conn *gorm.DB, cfg *config.Config, email, fullName, password string, role enums.Role, labID *int64) error {
	var existing models.User
	err := conn.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("looking up user %q: %w", email, err)
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		return fmt.Errorf("hashing password for %q: %w", email, err)
	}
	user := models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		LabID:        labID,
	}
	if err := conn.Create(&user).Error; err != nil {
		return fmt.Errorf("creating user %q: %w", email, err)
	}
	return nil
}
