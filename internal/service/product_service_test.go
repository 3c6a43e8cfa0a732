package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SallyAnnCreed/Costing-App/internal/dto"
	"github.com/SallyAnnCreed/Costing-App/internal/model"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func testCatalogs() *stubCatalogs {
	return &stubCatalogs{
		labels: []model.Label{
			{ID: uuid.New(), Product: "Front Label 50mm", CostPrice: dec(3)},
			{ID: uuid.New(), Product: "Back Label 50mm", CostPrice: dec(1.5)},
		},
		packaging: []model.Packaging{
			{ID: uuid.New(), Product: "Amber Bottle 500ml", BaseCost: dec(12), CostPrice: dec(12)},
			{ID: uuid.New(), Product: "Kraft Box Small", BaseCost: dec(20), Extras: model.ExtrasMap{"Insert": dec(5)}, CostPrice: dec(25)},
		},
		rawMaterials: []model.RawMaterial{
			{ID: uuid.New(), Product: "Glass Jar 500", Size: dec(500), Measurement: "ml", CostPrice: dec(10)},
			{ID: uuid.New(), Product: "Coconut Oil", Size: dec(1000), Measurement: "g", CostPrice: dec(80)},
		},
	}
}

func buildProductSvc() (ProductService, *stubProductRepo, *stubArchiveRepo, *stubCatalogs) {
	repo := newStubProductRepo()
	archive := newStubArchiveRepo()
	catalogs := testCatalogs()
	return NewProductService(repo, archive, catalogs), repo, archive, catalogs
}

func seedProduct(t *testing.T, svc ProductService) *dto.ProductResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:          "Collagen Blend 500ml",
		SKU:           "SAC-001",
		LabelUsed:     "Front Label 50mm",
		PackagingUsed: "Amber Bottle 500ml",
		RawMaterialsUsed: []dto.BOMLineRequest{
			{Name: "Glass Jar 500", AmountUsed: dec(250)},
		},
		SellingPrice: dec(30),
	}, "tester")
	require.NoError(t, err)
	return resp
}

func TestCreate_DerivesAllFields(t *testing.T) {
	svc, _, _, _ := buildProductSvc()
	resp := seedProduct(t, svc)

	assert.Equal(t, "3", resp.LabelCost.String())
	assert.Equal(t, "12", resp.BasePackageCost.String())
	assert.Equal(t, "12", resp.PackageCost.String())
	assert.Equal(t, "5", resp.RawMaterialCost.String())
	assert.Equal(t, "20", resp.UnitCost.String())
	assert.Equal(t, "15", resp.VATRate.String())
	assert.Equal(t, "26.09", resp.ExVAT.String())
	assert.Equal(t, "3.91", resp.VATAmount.String())
	assert.Equal(t, "6.09", resp.GPAmount.String())
	gp, _ := resp.GPPercentage.Float64()
	assert.InDelta(t, 23.34, gp, 0.02)
	assert.Equal(t, "tester", resp.UpdatedBy)
}

func TestCreate_UnresolvedSelectionsCostZero(t *testing.T) {
	svc, _, _, _ := buildProductSvc()
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:          "Mystery Product",
		LabelUsed:     "No Such Label",
		PackagingUsed: "No Such Packaging",
		RawMaterialsUsed: []dto.BOMLineRequest{
			{Name: "No Such Material", AmountUsed: dec(100)},
		},
	}, "tester")
	require.NoError(t, err)
	assert.True(t, resp.LabelCost.IsZero())
	assert.True(t, resp.PackageCost.IsZero())
	assert.True(t, resp.RawMaterialCost.IsZero())
	assert.True(t, resp.UnitCost.IsZero())
}

func TestSetLabel_PersistsExactlyThreeFields(t *testing.T) {
	svc, repo, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	require.NoError(t, svc.SetLabel(context.Background(), id, "Back Label 50mm"))

	assert.Len(t, repo.lastFields, 3)
	assert.Contains(t, repo.lastFields, "label_used")
	assert.Contains(t, repo.lastFields, "label_cost")
	assert.Contains(t, repo.lastFields, "unit_cost")

	stored, _ := repo.FindByID(context.Background(), id)
	assert.Equal(t, "1.5", stored.LabelCost.String())
	assert.Equal(t, "18.5", stored.UnitCost.String())
	// GP figures stay stale until the explicit recalculate action.
	assert.Equal(t, "6.09", stored.GPAmount.String())
}

func TestSetLabel_UnresolvedNameZeroesCost(t *testing.T) {
	svc, repo, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	require.NoError(t, svc.SetLabel(context.Background(), id, "Discontinued Label"))

	stored, _ := repo.FindByID(context.Background(), id)
	assert.True(t, stored.LabelCost.IsZero())
	assert.Equal(t, "17", stored.UnitCost.String())
}

func TestToggleInsert_RoundTrip(t *testing.T) {
	svc, repo, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	require.NoError(t, svc.ToggleInsert(context.Background(), id))
	stored, _ := repo.FindByID(context.Background(), id)
	assert.True(t, stored.InsertApplied)
	assert.Equal(t, "17", stored.PackageCost.String())
	assert.Equal(t, "25", stored.UnitCost.String())

	require.NoError(t, svc.ToggleInsert(context.Background(), id))
	stored, _ = repo.FindByID(context.Background(), id)
	assert.False(t, stored.InsertApplied)
	assert.Equal(t, "12", stored.PackageCost.String())
	assert.Equal(t, "20", stored.UnitCost.String())
}

func TestUpdateBOMLine_RecomputesCosts(t *testing.T) {
	svc, repo, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	amount := dec(500)
	require.NoError(t, svc.UpdateBOMLine(context.Background(), id, 0, dto.UpdateBOMLineRequest{AmountUsed: &amount}))

	stored, _ := repo.FindByID(context.Background(), id)
	assert.Equal(t, "10", stored.RawMaterialCost.String())
	assert.Equal(t, "25", stored.UnitCost.String())
}

func TestUpdateBOMLine_NameChangeResetsAmount(t *testing.T) {
	svc, repo, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	name := "Coconut Oil"
	require.NoError(t, svc.UpdateBOMLine(context.Background(), id, 0, dto.UpdateBOMLineRequest{Name: &name}))

	stored, _ := repo.FindByID(context.Background(), id)
	assert.Equal(t, "Coconut Oil", stored.RawMaterialsUsed[0].Name)
	assert.True(t, stored.RawMaterialsUsed[0].AmountUsed.IsZero())
	assert.True(t, stored.RawMaterialCost.IsZero())
	assert.Equal(t, "15", stored.UnitCost.String())
}

func TestUpdateBOMLine_IndexOutOfRange(t *testing.T) {
	svc, _, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	name := "Coconut Oil"
	err := svc.UpdateBOMLine(context.Background(), id, 5, dto.UpdateBOMLineRequest{Name: &name})
	assert.ErrorContains(t, err, "out of range")
}

func TestAddAndRemoveBOMLine(t *testing.T) {
	svc, repo, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	require.NoError(t, svc.AddBOMLine(context.Background(), id))
	stored, _ := repo.FindByID(context.Background(), id)
	require.Len(t, stored.RawMaterialsUsed, 2)
	assert.Empty(t, stored.RawMaterialsUsed[1].Name)

	require.NoError(t, svc.RemoveBOMLine(context.Background(), id, 0))
	stored, _ = repo.FindByID(context.Background(), id)
	require.Len(t, stored.RawMaterialsUsed, 1)
	assert.True(t, stored.RawMaterialCost.IsZero())
	assert.Equal(t, "15", stored.UnitCost.String())
}

func TestSetSellingPrice_LeavesProfitStale(t *testing.T) {
	svc, repo, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	require.NoError(t, svc.SetSellingPrice(context.Background(), id, dec(46)))

	stored, _ := repo.FindByID(context.Background(), id)
	assert.Equal(t, "46", stored.SellingPrice.String())
	assert.Equal(t, "40", stored.ExVAT.String())
	assert.Equal(t, "6", stored.VATAmount.String())
	// GP still reflects the old R30 price until recalculated.
	assert.Equal(t, "6.09", stored.GPAmount.String())

	_, err := svc.Recalculate(context.Background(), id, "tester")
	require.NoError(t, err)
	stored, _ = repo.FindByID(context.Background(), id)
	assert.Equal(t, "20", stored.GPAmount.String())
	assert.Equal(t, "50", stored.GPPercentage.String())
}

func TestRecalculate_RefreshesUnitCostAndProfit(t *testing.T) {
	svc, repo, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	// Simulate a catalog fan-out that bumped label cost without touching GP.
	require.NoError(t, repo.Update(context.Background(), id, map[string]interface{}{
		"label_cost": dec(4),
	}))

	resp, err := svc.Recalculate(context.Background(), id, "tester")
	require.NoError(t, err)
	assert.Equal(t, "21", resp.UnitCost.String())
	assert.Equal(t, "5.09", resp.GPAmount.String())
}

func TestUpdate_FormEditRefreshesProfit(t *testing.T) {
	svc, _, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	price := dec(46)
	resp, err := svc.Update(context.Background(), id, dto.UpdateProductRequest{SellingPrice: &price}, "editor2")
	require.NoError(t, err)
	assert.Equal(t, "40", resp.ExVAT.String())
	assert.Equal(t, "20", resp.GPAmount.String())
	assert.Equal(t, "50", resp.GPPercentage.String())
	assert.Equal(t, "editor2", resp.UpdatedBy)
}

func TestList_FiltersByNameAndSKU(t *testing.T) {
	svc, _, _, _ := buildProductSvc()
	seedProduct(t, svc)
	_, err := svc.Create(context.Background(), dto.CreateProductRequest{Name: "Beef Broth 1L", SKU: "SAC-002"}, "tester")
	require.NoError(t, err)

	byName, err := svc.List(context.Background(), dto.ProductFilter{Search: "collagen"})
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	bySKU, err := svc.List(context.Background(), dto.ProductFilter{Search: "sac-002"})
	require.NoError(t, err)
	assert.Len(t, bySKU, 1)
	assert.Equal(t, "Beef Broth 1L", bySKU[0].Name)
}

func TestArchiveRestore_PreservesFields(t *testing.T) {
	svc, repo, archive, _ := buildProductSvc()
	created := seedProduct(t, svc)
	id := uuid.MustParse(created.ID)

	require.NoError(t, svc.Archive(context.Background(), id))
	_, err := repo.FindByID(context.Background(), id)
	assert.Error(t, err)
	stored, err := archive.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, stored.ArchivedAt)

	restored, err := svc.Restore(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, created.ID, restored.ID)
	assert.Equal(t, created.Name, restored.Name)
	assert.Equal(t, created.UnitCost.String(), restored.UnitCost.String())
	assert.Equal(t, created.GPAmount.String(), restored.GPAmount.String())
	_, err = archive.FindByID(context.Background(), id)
	assert.Error(t, err)
}

func TestArchive_CopyFailureLeavesLedgerUntouched(t *testing.T) {
	svc, repo, archive, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	archive.createErr = errors.New("store rejected write")
	err := svc.Archive(context.Background(), id)
	assert.ErrorContains(t, err, "archiving product")
	_, findErr := repo.FindByID(context.Background(), id)
	assert.NoError(t, findErr)
}

func TestRestore_DeleteFailureLeavesBothCopies(t *testing.T) {
	svc, repo, archive, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)
	require.NoError(t, svc.Archive(context.Background(), id))

	archive.deleteErr = errors.New("store rejected write")
	_, err := svc.Restore(context.Background(), id)
	assert.ErrorContains(t, err, "removing restored product from archive")
	// Both collections hold the product until the next retry.
	_, ledgerErr := repo.FindByID(context.Background(), id)
	assert.NoError(t, ledgerErr)
	_, archiveErr := archive.FindByID(context.Background(), id)
	assert.NoError(t, archiveErr)
}

func TestPersistenceFailure_SurfacesToCaller(t *testing.T) {
	svc, repo, _, _ := buildProductSvc()
	id := uuid.MustParse(seedProduct(t, svc).ID)

	repo.updateErr = errors.New("store rejected write")
	err := svc.SetSellingPrice(context.Background(), id, dec(50))
	assert.ErrorContains(t, err, "saving product")
}
