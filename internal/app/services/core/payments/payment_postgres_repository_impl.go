package payments

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/queries"
	"context"
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"
)

type paymentPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	paymentPostgresRepositoryInstance contracts.PaymentRepository
	oncePaymentPostgresRepository     sync.Once
)

func NewPaymentPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PaymentRepository {
	oncePaymentPostgresRepository.Do(func() {
		paymentPostgresRepositoryInstance = &paymentPostgresRepository{
			DB:  db,
			Log: logger,
		}
	})
	return paymentPostgresRepositoryInstance
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var payment models.Payment
	var paidAt, failedAt, refundedAt sql.NullTime
	err := row.Scan(
		&payment.ID,
		&payment.RequestID,
		&payment.UserID,
		&payment.OrgID,
		&payment.StripePaymentIntentID,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.Description,
		&paidAt,
		&failedAt,
		&refundedAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	payment.PaidAt = nullTimePtr(paidAt)
	payment.FailedAt = nullTimePtr(failedAt)
	payment.RefundedAt = nullTimePtr(refundedAt)
	return &payment, nil
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}

func (repo *paymentPostgresRepository) Create(ctx context.Context, payment *models.Payment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("paymentPostgresRepository.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
	)

	_, err := repo.DB.ExecContext(ctx, queries.InsertPayment,
		payment.ID,
		payment.RequestID,
		payment.UserID,
		payment.OrgID,
		payment.StripePaymentIntentID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.Description,
		payment.CreatedAt,
	)
	if err != nil {
		repo.Log.Error("paymentPostgresRepository.Create error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}

	repo.Log.Info("paymentPostgresRepository.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (repo *paymentPostgresRepository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Payment, error) {
	return repo.findOne(ctx, "FindByPaymentIntentID", queries.GetPaymentByPaymentIntentID, paymentIntentID)
}

func (repo *paymentPostgresRepository) FindLatestByRequestID(ctx context.Context, requestID string) (*models.Payment, error) {
	return repo.findOne(ctx, "FindLatestByRequestID", queries.GetLatestPaymentByRequestID, requestID)
}

func (repo *paymentPostgresRepository) FindByOrgID(ctx context.Context, orgID string, status models.PaymentStatus, limit int) ([]models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("paymentPostgresRepository.FindByOrgID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, orgID),
	)

	rows, err := repo.DB.QueryContext(ctx, queries.GetPaymentsByOrgID, orgID, string(status), limit)
	if err != nil {
		repo.Log.Error("paymentPostgresRepository.FindByOrgID error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			repo.Log.Error("paymentPostgresRepository.FindByOrgID error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	repo.Log.Info("paymentPostgresRepository.FindByOrgID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(payments)),
	)
	return payments, nil
}

func (repo *paymentPostgresRepository) UpdateStatus(ctx context.Context, paymentIntentID string, status models.PaymentStatus, at time.Time) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("paymentPostgresRepository.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStatusKey, string(status)),
	)

	_, err := repo.DB.ExecContext(ctx, queries.UpdatePaymentStatus, string(status), at, paymentIntentID)
	if err != nil {
		repo.Log.Error("paymentPostgresRepository.UpdateStatus error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *paymentPostgresRepository) GetStatsByOrgID(ctx context.Context, orgID string, monthStart time.Time) (*models.PaymentStats, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("paymentPostgresRepository.GetStatsByOrgID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrgIDKey, orgID),
	)

	var stats models.PaymentStats
	err := repo.DB.QueryRowContext(ctx, queries.GetPaymentStatsByOrgID, orgID, monthStart).Scan(
		&stats.TotalRevenue,
		&stats.ThisMonthRevenue,
		&stats.PendingAmount,
		&stats.SuccessCount,
		&stats.PendingCount,
		&stats.FailedCount,
	)
	if err != nil {
		repo.Log.Error("paymentPostgresRepository.GetStatsByOrgID error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &stats, nil
}

func (repo *paymentPostgresRepository) findOne(ctx context.Context, method, query string, arg string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	repo.Log.Info("paymentPostgresRepository."+method+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	payment, err := scanPayment(repo.DB.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		repo.Log.Info("paymentPostgresRepository."+method+" no payment found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, nil
	} else if err != nil {
		repo.Log.Error("paymentPostgresRepository."+method+" error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return payment, nil
}
