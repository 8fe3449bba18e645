package repository

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/database/dbtest"
	mcore "github.com/amirhossein-jamali/polaroid-studio/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiftCodeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should normalize and redeem a code once", func(t *testing.T) {
		repo := NewGiftCodeRepository(dbtest.NewSQLite(t), mcore.NewPermissiveMockLogger(t))
		code := &entity.GiftCode{Code: "  welcome-50 ", CreditAmount: 50, CreatedAt: baseTime}
		require.NoError(t, repo.Create(ctx, code))

		stored, err := repo.GetByCodeForUpdate(ctx, "WELCOME-50")
		require.NoError(t, err)
		assert.Equal(t, code.ID, stored.ID)
		assert.Equal(t, int64(50), stored.CreditAmount)
		assert.False(t, stored.Used)
		assert.Nil(t, stored.UsedAt)

		require.NoError(t, stored.Redeem("user-1", 7, baseTime.Add(time.Hour)))
		require.NoError(t, repo.MarkUsed(ctx, stored))

		redeemed, err := repo.GetByCodeForUpdate(ctx, "WELCOME-50")
		require.NoError(t, err)
		assert.True(t, redeemed.Used)
		assert.Equal(t, "user-1", redeemed.UsedBy)
		assert.Equal(t, uint64(7), redeemed.TransactionID)
		require.NotNil(t, redeemed.UsedAt)
		assert.True(t, baseTime.Add(time.Hour).Equal(*redeemed.UsedAt))

		assert.ErrorIs(t, repo.MarkUsed(ctx, stored), errs.ErrGiftCodeUsed)
	})

	t.Run("should report an unknown code", func(t *testing.T) {
		repo := NewGiftCodeRepository(dbtest.NewSQLite(t), mcore.NewPermissiveMockLogger(t))

		_, err := repo.GetByCodeForUpdate(ctx, "NOPE")
		assert.ErrorIs(t, err, errs.ErrGiftCodeNotFound)
	})

	t.Run("should reject a duplicate code", func(t *testing.T) {
		repo := NewGiftCodeRepository(dbtest.NewSQLite(t), mcore.NewPermissiveMockLogger(t))
		require.NoError(t, repo.Create(ctx, &entity.GiftCode{Code: "ONCE", CreditAmount: 10, CreatedAt: baseTime}))

		err := repo.Create(ctx, &entity.GiftCode{Code: "once", CreditAmount: 20, CreatedAt: baseTime})
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("should keep the expiry", func(t *testing.T) {
		repo := NewGiftCodeRepository(dbtest.NewSQLite(t), mcore.NewPermissiveMockLogger(t))
		expiry := baseTime.Add(24 * time.Hour)
		require.NoError(t, repo.Create(ctx, &entity.GiftCode{Code: "SOON", CreditAmount: 10, ExpiredAt: &expiry, CreatedAt: baseTime}))

		stored, err := repo.GetByCodeForUpdate(ctx, "SOON")
		require.NoError(t, err)
		require.NotNil(t, stored.ExpiredAt)
		assert.ErrorIs(t, stored.Redeemable(expiry), errs.ErrGiftCodeExpired)
		assert.NoError(t, stored.Redeemable(baseTime))
	})
}

func TestChargeRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("should list enabled products of a locale by credit", func(t *testing.T) {
		repo := NewChargeProductRepository(dbtest.NewSQLite(t), mcore.NewPermissiveMockLogger(t))

		products := []*entity.ChargeProduct{
			{Amount: 999, OriginalAmount: 1299, Credit: 500, Currency: entity.CurrencyUSD, Locale: "en", Title: "Pro", Tag: []string{"popular"}, CreatedAt: baseTime},
			{Amount: 299, OriginalAmount: 299, Credit: 100, Currency: entity.CurrencyUSD, Locale: "en", Title: "Starter", CreatedAt: baseTime},
			{Amount: 99, Credit: 10, Currency: entity.CurrencyUSD, Locale: "en", Title: "Retired", State: entity.ChargeProductDisabled, CreatedAt: baseTime},
			{Amount: 1900, Credit: 100, Currency: entity.CurrencyCNY, Locale: "zh", Title: "入门", CreatedAt: baseTime},
		}
		for _, p := range products {
			require.NoError(t, repo.Create(ctx, p))
			require.NotZero(t, p.ID)
		}

		listed, err := repo.ListByLocale(ctx, "en")
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, "Starter", listed[0].Title)
		assert.Equal(t, "Pro", listed[1].Title)
		assert.Equal(t, []string{"popular"}, listed[1].Tag)
		assert.Equal(t, entity.ChargeProductEnabled, listed[1].State)
		assert.Equal(t, int64(1299), listed[1].OriginalAmount)

		none, err := repo.ListByLocale(ctx, "fr")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("should store a gift code order", func(t *testing.T) {
		repo := NewChargeOrderRepository(dbtest.NewSQLite(t), mcore.NewPermissiveMockLogger(t))
		paidAt := baseTime
		order := &entity.ChargeOrder{
			UserID:    "user-1",
			UserInfo:  map[string]any{"email": "a@example.com"},
			Credit:    50,
			Phase:     entity.OrderPhasePaid,
			Channel:   entity.PaymentChannelGiftCode,
			Currency:  entity.CurrencyUSD,
			PaymentAt: &paidAt,
			Result:    map[string]any{"code": "WELCOME-50"},
			CreatedAt: baseTime,
		}

		require.NoError(t, repo.Create(ctx, order))
		assert.NotZero(t, order.ID)
	})
}

func TestMediaRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMediaRepository(dbtest.NewSQLite(t), mcore.NewPermissiveMockLogger(t))

	upload := entity.ImageUpload{Filename: "cat.png", ContentType: "image/png", Data: []byte("png-bytes")}
	media := upload.ToMedia(baseTime)
	media.Ext = map[string]any{"width": float64(640)}

	require.NoError(t, repo.Create(ctx, media))
	require.NotZero(t, media.ID)

	t.Run("should find media by digest", func(t *testing.T) {
		stored, err := repo.GetByMD5(ctx, upload.MD5())
		require.NoError(t, err)
		assert.Equal(t, media.ID, stored.ID)
		assert.Equal(t, "cat.png", stored.Name)
		assert.Equal(t, "uploads/"+upload.MD5()+".png", stored.Key)
		assert.Equal(t, int64(len("png-bytes")), stored.FileSize)
		assert.Equal(t, float64(640), stored.Ext["width"])
	})

	t.Run("should reject the same upload twice", func(t *testing.T) {
		err := repo.Create(ctx, upload.ToMedia(baseTime))
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("should report unknown digests", func(t *testing.T) {
		_, err := repo.GetByMD5(ctx, "0000")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestEngagementRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEngagementRepository(dbtest.NewSQLite(t), mcore.NewPermissiveMockLogger(t))

	t.Run("should record a download", func(t *testing.T) {
		record := &entity.DownloadRecord{
			PolaroidID:   1,
			UserID:       "user-1",
			DownloadType: entity.DownloadTypeOriginal,
			UserAgent:    "test-agent",
			IPAddress:    "127.0.0.1",
			CreatedAt:    baseTime,
		}
		require.NoError(t, repo.CreateDownload(ctx, record))
		assert.NotZero(t, record.ID)
	})

	t.Run("should record a view with and without duration", func(t *testing.T) {
		duration := 12
		withDuration := &entity.ViewRecord{PolaroidID: 1, UserID: "user-1", ViewDuration: &duration, CreatedAt: baseTime}
		withoutDuration := &entity.ViewRecord{PolaroidID: 1, UserID: "user-2", Referrer: "https://example.com", CreatedAt: baseTime}

		require.NoError(t, repo.CreateView(ctx, withDuration))
		require.NoError(t, repo.CreateView(ctx, withoutDuration))
		assert.NotEqual(t, withDuration.ID, withoutDuration.ID)
	})
}
