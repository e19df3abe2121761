package tests

import (
	"context"
	"strings"
	"testing"

	"fleet/internal/domain"
	"fleet/internal/service"
)

// ──────────────────────────────────────────────
// REPORTS
// ──────────────────────────────────────────────

type reportFixture struct {
	vehicleRepo     *MockVehicleRepository
	driverRepo      *MockDriverRepository
	rentalRepo      *MockRentalRepository
	fineRepo        *MockFineRepository
	maintenanceRepo *MockMaintenanceRepository
	service         *service.ReportService
}

// newReportFixture seeds two vehicles and two drivers with rentals, fines,
// and maintenance spread across May and June 2025.
func newReportFixture() *reportFixture {
	f := &reportFixture{
		vehicleRepo:     NewMockVehicleRepository(),
		driverRepo:      NewMockDriverRepository(),
		rentalRepo:      NewMockRentalRepository(),
		fineRepo:        NewMockFineRepository(),
		maintenanceRepo: NewMockMaintenanceRepository(),
	}
	f.service = service.NewReportService(f.vehicleRepo, f.driverRepo, f.rentalRepo, f.fineRepo, f.maintenanceRepo)

	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", Plate: "AAA-1111", Type: "sedan", DepartmentID: "dept-1"})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-2", Plate: "BBB-2222", Type: "truck", DepartmentID: "dept-1"})

	f.driverRepo.AddDriver(&domain.Driver{ID: "driver-1", CPF: "111", Name: "Ana Souza", DepartmentID: "dept-1"})
	f.driverRepo.AddDriver(&domain.Driver{ID: "driver-2", CPF: "222", Name: "Bruno Lima", DepartmentID: "dept-1"})

	km1, km2 := 100.0, 250.0
	f.rentalRepo.AddRental(&domain.Rental{
		ID: "rental-1", VehicleID: "vehicle-1", DriverID: "driver-1",
		Period:      domain.ClosedPeriod(date(2025, 5, 1), date(2025, 5, 5)),
		Destination: "Airport", Kilometers: &km1,
	})
	f.rentalRepo.AddRental(&domain.Rental{
		ID: "rental-2", VehicleID: "vehicle-1", DriverID: "driver-2",
		Period:      domain.ClosedPeriod(date(2025, 6, 1), date(2025, 6, 5)),
		Destination: "Harbor", Kilometers: &km2,
	})
	f.rentalRepo.AddRental(&domain.Rental{
		ID: "rental-3", VehicleID: "vehicle-2", DriverID: "driver-1",
		Period:      domain.OpenPeriod(date(2025, 6, 10)),
		Destination: "Long haul",
	})

	f.fineRepo.AddFine(&domain.Fine{ID: "fine-1", VehicleID: "vehicle-1", DriverID: "driver-1", Date: date(2025, 5, 3), Kind: "speeding", Amount: 200})
	f.fineRepo.AddFine(&domain.Fine{ID: "fine-2", VehicleID: "vehicle-1", DriverID: "", Date: date(2025, 6, 2), Kind: "parking", Amount: 50})

	f.maintenanceRepo.AddMaintenance(&domain.Maintenance{ID: "maint-1", VehicleID: "vehicle-2", Date: date(2025, 5, 20), Kind: "oil change", Cost: 300})

	return f
}

func TestVehicleCosts(t *testing.T) {
	t.Parallel()

	f := newReportFixture()

	rows, err := f.service.VehicleCosts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := make(map[string]service.VehicleCostRow)
	for _, row := range rows {
		byID[row.VehicleID] = row
	}

	v1 := byID["vehicle-1"]
	if v1.FineTotal != 250 {
		t.Errorf("vehicle-1 fine total: got %v, want 250", v1.FineTotal)
	}
	if v1.MaintenanceTotal != 0 {
		t.Errorf("vehicle-1 maintenance total: got %v, want 0", v1.MaintenanceTotal)
	}
	if v1.Total != 250 {
		t.Errorf("vehicle-1 total: got %v, want 250", v1.Total)
	}

	v2 := byID["vehicle-2"]
	if v2.MaintenanceTotal != 300 || v2.Total != 300 {
		t.Errorf("vehicle-2 totals: got maintenance=%v total=%v, want 300/300", v2.MaintenanceTotal, v2.Total)
	}
}

func TestVehicleKilometers_AggregatesPerVehicle(t *testing.T) {
	t.Parallel()

	f := newReportFixture()

	report, err := f.service.VehicleKilometers(context.Background(), service.ReportFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Total != 2 {
		t.Fatalf("expected 2 rows, got %d", report.Total)
	}

	byID := make(map[string]service.VehicleKmRow)
	for _, row := range report.Data {
		byID[row.VehicleID] = row
	}

	if row := byID["vehicle-1"]; row.RentalCount != 2 || row.TotalKm != 350 {
		t.Errorf("vehicle-1: got count=%d km=%v, want 2/350", row.RentalCount, row.TotalKm)
	}
	if row := byID["vehicle-2"]; row.RentalCount != 1 || row.TotalKm != 0 {
		t.Errorf("vehicle-2: got count=%d km=%v, want 1/0", row.RentalCount, row.TotalKm)
	}
}

func TestVehicleKilometers_DateFilter(t *testing.T) {
	t.Parallel()

	f := newReportFixture()

	// Only rentals starting in June count.
	start := date(2025, 6, 1)
	report, err := f.service.VehicleKilometers(context.Background(), service.ReportFilter{StartDate: &start})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := make(map[string]service.VehicleKmRow)
	for _, row := range report.Data {
		byID[row.VehicleID] = row
	}

	if row := byID["vehicle-1"]; row.RentalCount != 1 || row.TotalKm != 250 {
		t.Errorf("vehicle-1 filtered: got count=%d km=%v, want 1/250", row.RentalCount, row.TotalKm)
	}
}

func TestVehicleKilometers_SortAndPagination(t *testing.T) {
	t.Parallel()

	f := newReportFixture()

	report, err := f.service.VehicleKilometers(context.Background(), service.ReportFilter{
		Sort:  "total_km",
		Desc:  true,
		Page:  1,
		Limit: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Data) != 1 {
		t.Fatalf("expected 1 row per page, got %d", len(report.Data))
	}
	if report.Data[0].VehicleID != "vehicle-1" {
		t.Errorf("expected vehicle-1 first when sorting by km desc, got %s", report.Data[0].VehicleID)
	}
	if report.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", report.TotalPages)
	}
}

func TestVehicleKilometers_PageBeyondEnd_IsEmpty(t *testing.T) {
	t.Parallel()

	f := newReportFixture()

	report, err := f.service.VehicleKilometers(context.Background(), service.ReportFilter{Page: 9, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Data) != 0 {
		t.Errorf("expected empty page, got %d rows", len(report.Data))
	}
	if report.Total != 2 {
		t.Errorf("total should still report all rows, got %d", report.Total)
	}
}

func TestVehicleKilometersCSV(t *testing.T) {
	t.Parallel()

	f := newReportFixture()

	data, err := f.service.VehicleKilometersCSV(context.Background(), service.ReportFilter{Sort: "plate"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "vehicle_id,plate,rental_count,total_km" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "AAA-1111") {
		t.Errorf("expected AAA-1111 first when sorted by plate, got %q", lines[1])
	}
}

func TestDriverFines_SkipsUnattributed(t *testing.T) {
	t.Parallel()

	f := newReportFixture()

	rows, err := f.service.DriverFines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := make(map[string]service.DriverFinesRow)
	for _, row := range rows {
		byID[row.DriverID] = row
	}

	if row := byID["driver-1"]; row.FineCount != 1 || row.Total != 200 {
		t.Errorf("driver-1: got count=%d total=%v, want 1/200", row.FineCount, row.Total)
	}
	// The unattributed parking fine must not land on anyone.
	if row := byID["driver-2"]; row.FineCount != 0 {
		t.Errorf("driver-2 should have no fines, got %d", row.FineCount)
	}
}

func TestDriverRentals(t *testing.T) {
	t.Parallel()

	f := newReportFixture()

	report, err := f.service.DriverRentals(context.Background(), service.ReportFilter{Sort: "name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Total != 2 {
		t.Fatalf("expected 2 drivers, got %d", report.Total)
	}
	if report.Data[0].Name != "Ana Souza" {
		t.Errorf("expected Ana Souza first when sorted by name, got %s", report.Data[0].Name)
	}

	ana := report.Data[0]
	if ana.RentalCount != 2 || ana.TotalKm != 100 {
		t.Errorf("ana: got count=%d km=%v, want 2/100", ana.RentalCount, ana.TotalKm)
	}
	if len(ana.Rentals) != 2 {
		t.Errorf("expected ana's rentals to be listed, got %d", len(ana.Rentals))
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	f := newReportFixture()

	summary, err := f.service.Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Vehicles != 2 || summary.Drivers != 2 || summary.Rentals != 3 {
		t.Errorf("counts: got vehicles=%d drivers=%d rentals=%d", summary.Vehicles, summary.Drivers, summary.Rentals)
	}
	if summary.OpenRentals != 1 {
		t.Errorf("expected 1 open rental, got %d", summary.OpenRentals)
	}
	if summary.TotalKm != 350 {
		t.Errorf("expected 350 total km, got %v", summary.TotalKm)
	}
	if summary.Fines != 2 || summary.FineTotal != 250 {
		t.Errorf("fines: got count=%d total=%v", summary.Fines, summary.FineTotal)
	}
	if summary.Maintenance != 1 || summary.MaintenanceTotal != 300 {
		t.Errorf("maintenance: got count=%d total=%v", summary.Maintenance, summary.MaintenanceTotal)
	}
}
