package billing

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/comercio-core/internal/domain"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
)

func newAllocatorFixture(seqs ...*entity.InvoiceSequence) (*SequenceAllocator, *fakeSeqRepo) {
	seqRepo := newFakeSeqRepo(seqs...)
	tx := &fakeSeqTxRunner{seqRepo: seqRepo}
	return NewSequenceAllocator(tx, seqRepo), seqRepo
}

func TestAllocateNext_Secuencial(t *testing.T) {
	allocator, seqRepo := newAllocatorFixture(&entity.InvoiceSequence{
		ID: "seq-1", CompanyID: "co-1", Prefix: "FV", CurrentNumber: 41,
		StartNumber: 1, NumberPadding: 5, IsActive: true,
	})

	a1, err := allocator.AllocateNext(context.Background(), "seq-1")
	require.NoError(t, err)
	assert.Equal(t, int64(41), a1.Number)
	assert.Equal(t, "FV00041", a1.Formatted)
	assert.False(t, a1.CorrectionApplied)

	a2, err := allocator.AllocateNext(context.Background(), "seq-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), a2.Number)
	assert.Equal(t, "FV00042", a2.Formatted)

	assert.Equal(t, int64(43), seqRepo.current("seq-1"))
}

// N asignaciones concurrentes sobre la misma serie: todos los números son
// distintos y contiguos, nadie recibe duplicado.
func TestAllocateNext_ConcurrenciaSinDuplicados(t *testing.T) {
	allocator, seqRepo := newAllocatorFixture(&entity.InvoiceSequence{
		ID: "seq-1", Prefix: "FV", CurrentNumber: 1, StartNumber: 1, IsActive: true,
	})

	const n = 50
	numbers := make([]int64, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			a, err := allocator.AllocateNext(context.Background(), "seq-1")
			if err != nil {
				errs[idx] = err
				return
			}
			numbers[idx] = a.Number
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for i, num := range numbers {
		assert.Equal(t, int64(i+1), num, "los números asignados deben ser contiguos y sin duplicados")
	}
	assert.Equal(t, int64(n+1), seqRepo.current("seq-1"))
}

// Contador corrupto (< 1): se corrige a max(1, StartNumber), se persiste el
// avance y se reporta la corrección.
func TestAllocateNext_AutoCorrigeContadorCorrupto(t *testing.T) {
	allocator, seqRepo := newAllocatorFixture(&entity.InvoiceSequence{
		ID: "seq-1", Prefix: "TRE", CurrentNumber: 0, StartNumber: 100, IsActive: true,
	})

	a, err := allocator.AllocateNext(context.Background(), "seq-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), a.Number)
	assert.True(t, a.CorrectionApplied)
	assert.NotEmpty(t, a.CorrectionNote)
	assert.Equal(t, int64(101), seqRepo.current("seq-1"))
}

func TestAllocateNext_AutoCorrigeSinStartNumber(t *testing.T) {
	allocator, _ := newAllocatorFixture(&entity.InvoiceSequence{
		ID: "seq-1", Prefix: "FV", CurrentNumber: -3, StartNumber: 0, IsActive: true,
	})

	a, err := allocator.AllocateNext(context.Background(), "seq-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.Number)
	assert.True(t, a.CorrectionApplied)
}

func TestAllocateNext_SerieNoExiste(t *testing.T) {
	allocator, _ := newAllocatorFixture()

	_, err := allocator.AllocateNext(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrSequenceNotFound)
}

func TestAllocateNext_SerieInactiva(t *testing.T) {
	allocator, seqRepo := newAllocatorFixture(&entity.InvoiceSequence{
		ID: "seq-1", Prefix: "FV", CurrentNumber: 10, IsActive: false,
	})

	_, err := allocator.AllocateNext(context.Background(), "seq-1")
	assert.ErrorIs(t, err, domain.ErrSequenceInactive)
	assert.Equal(t, int64(10), seqRepo.current("seq-1"))
}

// El preview nunca avanza el contador, ni siquiera cuando aplica la corrección
// en memoria.
func TestPreviewNext_NoMutaEstado(t *testing.T) {
	allocator, seqRepo := newAllocatorFixture(&entity.InvoiceSequence{
		ID: "seq-1", Prefix: "FV", CurrentNumber: 7, NumberPadding: 3, IsActive: true,
	})

	a, err := allocator.PreviewNext(context.Background(), "seq-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.Number)
	assert.Equal(t, "FV007", a.Formatted)
	assert.Equal(t, int64(7), seqRepo.current("seq-1"))
}

func TestPreviewNext_CorrigeSoloEnMemoria(t *testing.T) {
	allocator, seqRepo := newAllocatorFixture(&entity.InvoiceSequence{
		ID: "seq-1", Prefix: "FV", CurrentNumber: 0, StartNumber: 50, IsActive: true,
	})

	a, err := allocator.PreviewNext(context.Background(), "seq-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), a.Number)
	assert.Equal(t, int64(0), seqRepo.current("seq-1"))
}

func TestRollback_DevuelveElNumero(t *testing.T) {
	allocator, seqRepo := newAllocatorFixture(&entity.InvoiceSequence{
		ID: "seq-1", Prefix: "FV", CurrentNumber: 50, StartNumber: 1, IsActive: true,
	})

	a, err := allocator.AllocateNext(context.Background(), "seq-1")
	require.NoError(t, err)
	require.Equal(t, int64(50), a.Number)
	require.Equal(t, int64(51), seqRepo.current("seq-1"))

	require.NoError(t, allocator.Rollback(context.Background(), "seq-1", a.Number))
	assert.Equal(t, int64(50), seqRepo.current("seq-1"))

	// La siguiente asignación reutiliza el número devuelto
	a2, err := allocator.AllocateNext(context.Background(), "seq-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), a2.Number)
}

// Si otro caller ya avanzó el contador, el rollback no retrocede: devolverlo
// reabriría el número del otro caller. El número devuelto queda como hueco.
func TestRollback_NoRetrocedeSiOtroYaAsigno(t *testing.T) {
	allocator, seqRepo := newAllocatorFixture(&entity.InvoiceSequence{
		ID: "seq-1", Prefix: "FV", CurrentNumber: 50, StartNumber: 1, IsActive: true,
	})

	a1, err := allocator.AllocateNext(context.Background(), "seq-1")
	require.NoError(t, err)
	a2, err := allocator.AllocateNext(context.Background(), "seq-1")
	require.NoError(t, err)
	require.Equal(t, int64(50), a1.Number)
	require.Equal(t, int64(51), a2.Number)

	require.NoError(t, allocator.Rollback(context.Background(), "seq-1", a1.Number))
	assert.Equal(t, int64(52), seqRepo.current("seq-1"), "el contador no debe retroceder sobre el número ajeno")

	a3, err := allocator.AllocateNext(context.Background(), "seq-1")
	require.NoError(t, err)
	assert.Equal(t, int64(52), a3.Number)
}

func TestResolveForCompany_PrefiereLaSeriePorDefecto(t *testing.T) {
	vieja := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	allocator, _ := newAllocatorFixture(
		&entity.InvoiceSequence{ID: "seq-a", CompanyID: "co-1", Prefix: "FV", IsActive: true, CreatedAt: vieja},
		&entity.InvoiceSequence{ID: "seq-b", CompanyID: "co-1", Prefix: "TRE", IsActive: true, IsDefault: true, CreatedAt: vieja.AddDate(0, 6, 0)},
	)

	seq, err := allocator.ResolveForCompany(context.Background(), "co-1", "")
	require.NoError(t, err)
	require.NotNil(t, seq)
	assert.Equal(t, "seq-b", seq.ID)
}

// La serie configurada en la empresa gana sobre la marcada is_default.
func TestResolveForCompany_LaSerieDeLaEmpresaGana(t *testing.T) {
	allocator, _ := newAllocatorFixture(
		&entity.InvoiceSequence{ID: "seq-a", CompanyID: "co-1", Prefix: "FV", IsActive: true, IsDefault: true},
		&entity.InvoiceSequence{ID: "seq-b", CompanyID: "co-1", Prefix: "TRE", IsActive: true},
	)

	seq, err := allocator.ResolveForCompany(context.Background(), "co-1", "seq-b")
	require.NoError(t, err)
	require.NotNil(t, seq)
	assert.Equal(t, "seq-b", seq.ID)
}

// Una serie preferida inactiva, inexistente o de otra empresa se ignora y se
// cae a la resolución normal.
func TestResolveForCompany_SeriePreferidaInvalidaSeIgnora(t *testing.T) {
	allocator, _ := newAllocatorFixture(
		&entity.InvoiceSequence{ID: "seq-a", CompanyID: "co-1", Prefix: "FV", IsActive: true, IsDefault: true},
		&entity.InvoiceSequence{ID: "seq-inactiva", CompanyID: "co-1", Prefix: "NC", IsActive: false},
		&entity.InvoiceSequence{ID: "seq-ajena", CompanyID: "co-2", Prefix: "XX", IsActive: true},
	)

	for _, preferida := range []string{"seq-inactiva", "seq-ajena", "no-existe"} {
		seq, err := allocator.ResolveForCompany(context.Background(), "co-1", preferida)
		require.NoError(t, err)
		require.NotNil(t, seq)
		assert.Equal(t, "seq-a", seq.ID)
	}
}

func TestResolveForCompany_SinDefectoUsaLaMasAntigua(t *testing.T) {
	vieja := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	allocator, _ := newAllocatorFixture(
		&entity.InvoiceSequence{ID: "seq-a", CompanyID: "co-1", Prefix: "FV", IsActive: true, CreatedAt: vieja},
		&entity.InvoiceSequence{ID: "seq-b", CompanyID: "co-1", Prefix: "TRE", IsActive: true, CreatedAt: vieja.AddDate(0, 6, 0)},
		&entity.InvoiceSequence{ID: "seq-c", CompanyID: "co-1", Prefix: "NC", IsActive: false, IsDefault: true, CreatedAt: vieja.AddDate(-1, 0, 0)},
	)

	seq, err := allocator.ResolveForCompany(context.Background(), "co-1", "")
	require.NoError(t, err)
	require.NotNil(t, seq)
	assert.Equal(t, "seq-a", seq.ID, "la serie por defecto inactiva no cuenta")
}

func TestResolveForCompany_SinSeriesActivas(t *testing.T) {
	allocator, _ := newAllocatorFixture(
		&entity.InvoiceSequence{ID: "seq-a", CompanyID: "co-1", Prefix: "FV", IsActive: false},
	)

	seq, err := allocator.ResolveForCompany(context.Background(), "co-1", "")
	require.NoError(t, err)
	assert.Nil(t, seq)
}
