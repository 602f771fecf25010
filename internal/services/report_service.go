package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"os-manager/internal/authz"
	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/repositories"
	"os-manager/pkg/constants"
	"os-manager/pkg/utils"
)

const (
	ExportXLSX = "xlsx"
	ExportCSV  = "csv"

	reportSheet     = "Relatório O.S."
	reportTimestamp = "02/01/2006 15:04"
)

var reportHeaders = []interface{}{
	"Título", "Cliente", "Status", "Prioridade", "Data Agendada", "Data Criação", "Responsável", "Categoria",
}

// ExportFile - готовый к отдаче файл отчёта.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ReportServiceInterface interface {
	Report(ctx context.Context, filter dto.ReportFilterDTO) (*dto.ReportDTO, error)
	Export(ctx context.Context, filter dto.ReportFilterDTO) (*ExportFile, error)
}

type ReportService struct {
	orderRepo  repositories.OrderRepositoryInterface
	gatekeeper *authz.Gatekeeper
	logService ActivityLogServiceInterface
	logger     *zap.Logger
	now        func() time.Time
}

func NewReportService(
	orderRepo repositories.OrderRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logService ActivityLogServiceInterface,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{orderRepo: orderRepo, gatekeeper: gatekeeper, logService: logService, logger: logger, now: time.Now}
}

// Report - заявки интервала (и статуса, если он не "all") плюс статистика по ним.
func (s *ReportService) Report(ctx context.Context, filter dto.ReportFilterDTO) (*dto.ReportDTO, error) {
	actor, _ := utils.GetActorFromCtx(ctx)
	if err := s.gatekeeper.Require(actor, authz.ReportsView); err != nil {
		return nil, err
	}
	r, err := ParseDateRange(filter.From, filter.To, s.now())
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.List(ctx, repositories.ListParams{SortDesc: repositories.SortCreatedDate, Limit: statsSourceLimit})
	if err != nil {
		return nil, err
	}

	filtered := make([]entities.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if !r.Contains(o.CreatedDate) {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(o.Status) != filter.Status {
			continue
		}
		filtered = append(filtered, o)
	}
	return &dto.ReportDTO{Orders: filtered, Stats: ComputeStats(filtered, r)}, nil
}

func (s *ReportService) Export(ctx context.Context, filter dto.ReportFilterDTO) (*ExportFile, error) {
	report, err := s.Report(ctx, filter)
	if err != nil {
		return nil, err
	}

	var file *ExportFile
	switch filter.Format {
	case ExportCSV:
		file, err = buildCSV(report.Orders)
	default:
		file, err = buildXLSX(report.Orders)
	}
	if err != nil {
		s.logger.Error("Не удалось сформировать отчёт", zap.String("format", filter.Format), zap.Error(err))
		return nil, err
	}

	s.logService.Record(ctx, dto.LogEntryDTO{
		ActionType:  entities.ActionCreate,
		EntityType:  constants.EntityReport,
		Description: fmt.Sprintf("Relatório exportado (%s, %d O.S.)", file.Name, len(report.Orders)),
		Severity:    entities.SeverityInfo,
	})
	return file, nil
}

func reportRow(o entities.ServiceOrder) []string {
	created := ""
	if !o.CreatedDate.IsZero() {
		created = o.CreatedDate.Format(reportTimestamp)
	}
	return []string{
		o.Title,
		o.ClientName,
		o.Status.Label(),
		o.Priority.Label(),
		o.ScheduledDate,
		created,
		o.AssignedTo,
		o.Category,
	}
}

func buildXLSX(orders []entities.ServiceOrder) (*ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeaders); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(reportSheet, "A1", "H1", style); err != nil {
		return nil, err
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := make([]interface{}, 0, len(reportHeaders))
		for _, v := range reportRow(o) {
			row = append(row, v)
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(reportSheet, "A", "B", 35)
	_ = f.SetColWidth(reportSheet, "C", "F", 18)
	_ = f.SetColWidth(reportSheet, "G", "H", 25)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Name:        "relatorio-os.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func buildCSV(orders []entities.ServiceOrder) (*ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := make([]string, 0, len(reportHeaders))
	for _, h := range reportHeaders {
		headers = append(headers, h.(string))
	}
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := w.Write(reportRow(o)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &ExportFile{
		Name:        "relatorio-os.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}
