package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// ReportService produces aggregate views over fleet data: costs, mileage,
// and fines. Reports are read-only and computed from repository snapshots.
type ReportService struct {
	vehicleRepo     repository.VehicleRepository
	driverRepo      repository.DriverRepository
	rentalRepo      repository.RentalRepository
	fineRepo        repository.FineRepository
	maintenanceRepo repository.MaintenanceRepository
}

// NewReportService creates a new ReportService.
func NewReportService(
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	rentalRepo repository.RentalRepository,
	fineRepo repository.FineRepository,
	maintenanceRepo repository.MaintenanceRepository,
) *ReportService {
	return &ReportService{
		vehicleRepo:     vehicleRepo,
		driverRepo:      driverRepo,
		rentalRepo:      rentalRepo,
		fineRepo:        fineRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

// ReportFilter narrows and shapes report output. StartDate/EndDate filter
// rentals by their start date; Sort names a report-specific column.
type ReportFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
	Sort      string
	Desc      bool
}

func (f ReportFilter) normalized() ReportFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	return f
}

func (f ReportFilter) matchesPeriodStart(start time.Time) bool {
	if f.StartDate != nil && start.Before(domain.DateOnly(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && start.After(domain.DateOnly(*f.EndDate)) {
		return false
	}
	return true
}

// VehicleCostRow aggregates maintenance and fine costs for one vehicle.
type VehicleCostRow struct {
	VehicleID        string  `json:"vehicle_id"`
	Plate            string  `json:"plate"`
	MaintenanceTotal float64 `json:"maintenance_total"`
	FineTotal        float64 `json:"fine_total"`
	Total            float64 `json:"total"`
}

// VehicleCosts reports maintenance plus fine costs per vehicle.
func (s *ReportService) VehicleCosts(ctx context.Context) ([]VehicleCostRow, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.maintenanceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	fines, err := s.fineRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	maintenanceByVehicle := make(map[string]float64)
	for _, m := range maintenance {
		maintenanceByVehicle[m.VehicleID] += m.Cost
	}
	finesByVehicle := make(map[string]float64)
	for _, f := range fines {
		finesByVehicle[f.VehicleID] += f.Amount
	}

	rows := make([]VehicleCostRow, 0, len(vehicles))
	for _, v := range vehicles {
		row := VehicleCostRow{
			VehicleID:        v.ID,
			Plate:            v.Plate,
			MaintenanceTotal: maintenanceByVehicle[v.ID],
			FineTotal:        finesByVehicle[v.ID],
		}
		row.Total = row.MaintenanceTotal + row.FineTotal
		rows = append(rows, row)
	}
	return rows, nil
}

// VehicleKmRow aggregates rental activity for one vehicle.
type VehicleKmRow struct {
	VehicleID   string  `json:"vehicle_id"`
	Plate       string  `json:"plate"`
	RentalCount int     `json:"rental_count"`
	TotalKm     float64 `json:"total_km"`
}

// VehicleKmReport is a page of the vehicle mileage report.
type VehicleKmReport struct {
	Data       []VehicleKmRow `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// VehicleKilometers reports rental count and distance per vehicle, filtered
// by rental start date, sortable by plate, rental_count, or total_km.
func (s *ReportService) VehicleKilometers(ctx context.Context, filter ReportFilter) (*VehicleKmReport, error) {
	rows, err := s.vehicleKmRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	filter = filter.normalized()
	sortVehicleKmRows(rows, filter.Sort, filter.Desc)

	total := len(rows)
	page := paginate(len(rows), filter.Page, filter.Limit)
	return &VehicleKmReport{
		Data:       rows[page.start:page.end],
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: page.totalPages,
	}, nil
}

// VehicleKilometersCSV renders the full (unpaginated) mileage report as CSV.
func (s *ReportService) VehicleKilometersCSV(ctx context.Context, filter ReportFilter) ([]byte, error) {
	rows, err := s.vehicleKmRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortVehicleKmRows(rows, filter.Sort, filter.Desc)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"vehicle_id", "plate", "rental_count", "total_km"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.VehicleID,
			row.Plate,
			strconv.Itoa(row.RentalCount),
			strconv.FormatFloat(row.TotalKm, 'f', -1, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportService) vehicleKmRows(ctx context.Context, filter ReportFilter) ([]VehicleKmRow, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentalRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	kms := make(map[string]float64)
	for _, r := range rentals {
		if !filter.matchesPeriodStart(r.Period.Start) {
			continue
		}
		counts[r.VehicleID]++
		if r.Kilometers != nil {
			kms[r.VehicleID] += *r.Kilometers
		}
	}

	rows := make([]VehicleKmRow, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, VehicleKmRow{
			VehicleID:   v.ID,
			Plate:       v.Plate,
			RentalCount: counts[v.ID],
			TotalKm:     kms[v.ID],
		})
	}
	return rows, nil
}

func sortVehicleKmRows(rows []VehicleKmRow, field string, desc bool) {
	if field == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		var less bool
		switch field {
		case "rental_count":
			less = rows[i].RentalCount < rows[j].RentalCount
		case "total_km":
			less = rows[i].TotalKm < rows[j].TotalKm
		default:
			less = rows[i].Plate < rows[j].Plate
		}
		if desc {
			return !less
		}
		return less
	})
}

// DriverFinesRow aggregates fines attributed to one driver.
type DriverFinesRow struct {
	DriverID  string  `json:"driver_id"`
	CPF       string  `json:"cpf"`
	Name      string  `json:"name"`
	FineCount int     `json:"fine_count"`
	Total     float64 `json:"total"`
}

// DriverFines reports fine count and amount per driver. Fines without an
// attributed driver are not counted.
func (s *ReportService) DriverFines(ctx context.Context) ([]DriverFinesRow, error) {
	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	fines, err := s.fineRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	totals := make(map[string]float64)
	for _, f := range fines {
		if f.DriverID == "" {
			continue
		}
		counts[f.DriverID]++
		totals[f.DriverID] += f.Amount
	}

	rows := make([]DriverFinesRow, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, DriverFinesRow{
			DriverID:  d.ID,
			CPF:       d.CPF,
			Name:      d.Name,
			FineCount: counts[d.ID],
			Total:     totals[d.ID],
		})
	}
	return rows, nil
}

// DriverRentalRow is one driver's rental history.
type DriverRentalRow struct {
	DriverID    string           `json:"driver_id"`
	CPF         string           `json:"cpf"`
	Name        string           `json:"name"`
	RentalCount int              `json:"rental_count"`
	TotalKm     float64          `json:"total_km"`
	Rentals     []*domain.Rental `json:"rentals"`
}

// DriverRentalReport is a page of the per-driver rental history report.
type DriverRentalReport struct {
	Data       []DriverRentalRow `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// DriverRentals reports each driver's rentals with count and distance
// totals, filtered by rental start date, sortable by name, rental_count,
// or total_km.
func (s *ReportService) DriverRentals(ctx context.Context, filter ReportFilter) (*DriverRentalReport, error) {
	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentalRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byDriver := make(map[string][]*domain.Rental)
	for _, r := range rentals {
		if !filter.matchesPeriodStart(r.Period.Start) {
			continue
		}
		byDriver[r.DriverID] = append(byDriver[r.DriverID], r)
	}

	rows := make([]DriverRentalRow, 0, len(drivers))
	for _, d := range drivers {
		row := DriverRentalRow{
			DriverID: d.ID,
			CPF:      d.CPF,
			Name:     d.Name,
			Rentals:  byDriver[d.ID],
		}
		row.RentalCount = len(row.Rentals)
		for _, r := range row.Rentals {
			if r.Kilometers != nil {
				row.TotalKm += *r.Kilometers
			}
		}
		rows = append(rows, row)
	}

	filter = filter.normalized()
	sortDriverRentalRows(rows, filter.Sort, filter.Desc)

	total := len(rows)
	page := paginate(len(rows), filter.Page, filter.Limit)
	return &DriverRentalReport{
		Data:       rows[page.start:page.end],
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: page.totalPages,
	}, nil
}

func sortDriverRentalRows(rows []DriverRentalRow, field string, desc bool) {
	if field == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		var less bool
		switch field {
		case "rental_count":
			less = rows[i].RentalCount < rows[j].RentalCount
		case "total_km":
			less = rows[i].TotalKm < rows[j].TotalKm
		default:
			less = rows[i].Name < rows[j].Name
		}
		if desc {
			return !less
		}
		return less
	})
}

// Summary is a fleet-wide overview.
type Summary struct {
	Vehicles         int     `json:"vehicles"`
	Drivers          int     `json:"drivers"`
	Rentals          int     `json:"rentals"`
	OpenRentals      int     `json:"open_rentals"`
	TotalKm          float64 `json:"total_km"`
	Fines            int     `json:"fines"`
	FineTotal        float64 `json:"fine_total"`
	Maintenance      int     `json:"maintenance"`
	MaintenanceTotal float64 `json:"maintenance_total"`
}

// Summarize computes the fleet-wide summary report.
func (s *ReportService) Summarize(ctx context.Context) (*Summary, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentalRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	fines, err := s.fineRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.maintenanceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Vehicles:    len(vehicles),
		Drivers:     len(drivers),
		Rentals:     len(rentals),
		Fines:       len(fines),
		Maintenance: len(maintenance),
	}
	for _, r := range rentals {
		if r.Period.Open {
			summary.OpenRentals++
		}
		if r.Kilometers != nil {
			summary.TotalKm += *r.Kilometers
		}
	}
	for _, f := range fines {
		summary.FineTotal += f.Amount
	}
	for _, m := range maintenance {
		summary.MaintenanceTotal += m.Cost
	}
	return summary, nil
}

type pageBounds struct {
	start, end, totalPages int
}

func paginate(total, page, limit int) pageBounds {
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return pageBounds{start: start, end: end, totalPages: totalPages}
}
