package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/comercio-core/internal/domain"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

// SequenceAllocator administra las series de numeración de facturas: entrega
// el siguiente número bajo transacción con bloqueo de fila, se auto-corrige
// ante contadores corruptos y permite devolver un número si el proveedor falla.
type SequenceAllocator struct {
	txRunner SequenceTxRunner
	seqRepo  repository.InvoiceSequenceRepository
}

// NewSequenceAllocator construye el asignador. seqRepo se usa solo para
// lecturas fuera de transacción (preview, resolución por empresa).
func NewSequenceAllocator(txRunner SequenceTxRunner, seqRepo repository.InvoiceSequenceRepository) *SequenceAllocator {
	return &SequenceAllocator{txRunner: txRunner, seqRepo: seqRepo}
}

// Allocation resultado de una asignación (o preview) de número.
type Allocation struct {
	SequenceID        string
	Prefix            string
	Number            int64
	Formatted         string
	CorrectionApplied bool
	CorrectionNote    string
}

// AllocateNext entrega el siguiente número de la serie y avanza el contador,
// todo dentro de una transacción con la fila de la serie bloqueada: dos
// callers concurrentes nunca reciben el mismo número y no se saltan números
// salvo por rollback explícito. Si el contador llegó corrupto (< 1) se corrige
// a max(1, StartNumber), se persiste y se reporta CorrectionApplied.
func (a *SequenceAllocator) AllocateNext(ctx context.Context, sequenceID string) (*Allocation, error) {
	var alloc *Allocation
	err := a.txRunner.RunSequence(ctx, func(seqRepo repository.InvoiceSequenceRepository) error {
		seq, err := seqRepo.GetForUpdate(ctx, sequenceID)
		if err != nil {
			return err
		}
		if seq == nil {
			return domain.ErrSequenceNotFound
		}
		if !seq.IsActive {
			return domain.ErrSequenceInactive
		}

		current := seq.CurrentNumber
		correctionApplied := false
		correctionNote := ""
		if current < 1 {
			// Contador heredado/corrupto: se corrige en vez de fallar
			healed := seq.StartNumber
			if healed < 1 {
				healed = 1
			}
			correctionApplied = true
			correctionNote = fmt.Sprintf(
				"el contador de la serie %s estaba en %d y se corrigió a %d", seq.Prefix, current, healed)
			current = healed
		}

		if err := seqRepo.UpdateCurrentNumber(ctx, seq.ID, current+1); err != nil {
			return err
		}
		alloc = &Allocation{
			SequenceID:        seq.ID,
			Prefix:            seq.Prefix,
			Number:            current,
			Formatted:         seq.FormatNumber(current),
			CorrectionApplied: correctionApplied,
			CorrectionNote:    correctionNote,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}

// PreviewNext devuelve el próximo número sin mutar estado (para la UI).
// Aplica la misma corrección de contador corrupto pero solo en memoria.
func (a *SequenceAllocator) PreviewNext(ctx context.Context, sequenceID string) (*Allocation, error) {
	seq, err := a.seqRepo.GetByID(ctx, sequenceID)
	if err != nil {
		return nil, err
	}
	if seq == nil {
		return nil, domain.ErrSequenceNotFound
	}
	current := seq.CurrentNumber
	if current < 1 {
		current = seq.StartNumber
		if current < 1 {
			current = 1
		}
	}
	return &Allocation{
		SequenceID: seq.ID,
		Prefix:     seq.Prefix,
		Number:     current,
		Formatted:  seq.FormatNumber(current),
	}, nil
}

// Rollback devuelve un número asignado: escribe CurrentNumber de vuelta al
// número entregado para que la próxima asignación lo reutilice. Solo se llama
// cuando el proveedor rechazó la emisión y el número no quedó usado.
// Si otro caller ya avanzó el contador en la ventana, retroceder reabriría el
// número de ese caller; en ese caso el rollback no hace nada y el número
// entregado queda como hueco en la serie.
func (a *SequenceAllocator) Rollback(ctx context.Context, sequenceID string, number int64) error {
	return a.txRunner.RunSequence(ctx, func(seqRepo repository.InvoiceSequenceRepository) error {
		seq, err := seqRepo.GetForUpdate(ctx, sequenceID)
		if err != nil {
			return err
		}
		if seq == nil {
			return domain.ErrSequenceNotFound
		}
		if seq.CurrentNumber != number+1 {
			return nil
		}
		return seqRepo.UpdateCurrentNumber(ctx, seq.ID, number)
	})
}

// ResolveForCompany resuelve la serie a usar para una empresa, en orden:
// la serie preferida (DefaultSequenceID de la empresa) si existe, es de la
// empresa y está activa; la serie activa marcada por defecto; la primera serie
// activa por fecha de creación. Devuelve nil si no hay ninguna serie activa.
func (a *SequenceAllocator) ResolveForCompany(ctx context.Context, companyID, preferredSequenceID string) (*entity.InvoiceSequence, error) {
	if preferredSequenceID != "" {
		seq, err := a.seqRepo.GetByID(ctx, preferredSequenceID)
		if err != nil {
			return nil, err
		}
		if seq != nil && seq.CompanyID == companyID && seq.IsActive {
			return seq, nil
		}
	}
	seq, err := a.seqRepo.GetDefaultActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if seq != nil {
		return seq, nil
	}
	return a.seqRepo.GetFirstActiveByCompany(ctx, companyID)
}
