package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// ProgramService handles program catalog operations. Catalog edits run
// through the unit of work so the edit and its booking sweep are one
// transaction.
type ProgramService struct {
	programRepo repository.ProgramRepository
	uow         repository.UnitOfWork
	reconciler  *ReconcileService
	tierService *TierService
}

// NewProgramService creates a new program service
func NewProgramService(
	programRepo repository.ProgramRepository,
	uow repository.UnitOfWork,
	reconciler *ReconcileService,
	tierService *TierService,
) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		uow:         uow,
		reconciler:  reconciler,
		tierService: tierService,
	}
}

// CreateProgramInput represents the create program input
type CreateProgramInput struct {
	Name         string
	Type         enum.ProgramType
	DurationDays int
	Cities       []entity.ProgramCity
	Packages     []entity.ProgramPackage
}

// CreateProgram creates a new program
func (s *ProgramService) CreateProgram(ctx context.Context, input *CreateProgramInput) (*entity.Program, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if err := validateCatalog(input.Type, input.Cities, input.Packages); err != nil {
		return nil, err
	}

	if err := s.tierService.AllowProgram(ctx); err != nil {
		return nil, err
	}

	existing, err := s.programRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A program with this name already exists")
	}

	program := &entity.Program{
		TenantID:     tenantID,
		Name:         input.Name,
		Type:         input.Type,
		DurationDays: input.DurationDays,
		Cities:       input.Cities,
		Packages:     input.Packages,
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// GetProgram retrieves a program by ID
func (s *ProgramService) GetProgram(ctx context.Context, id uuid.UUID) (*entity.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, apperror.NewNotFoundError("Program")
	}
	return program, nil
}

// ListPrograms lists programs for the current tenant
func (s *ProgramService) ListPrograms(ctx context.Context, params *repository.ProgramFilterParams) (*pagination.PaginatedResult[entity.Program], error) {
	programs, total, err := s.programRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(programs, pag), nil
}

// UpdateProgramInput represents the update program input
type UpdateProgramInput struct {
	ID           uuid.UUID
	Name         *string
	Type         *enum.ProgramType
	DurationDays *int
	Cities       []entity.ProgramCity
	Packages     []entity.ProgramPackage
}

// UpdateProgram edits the catalog and re-derives every dependent booking in
// the same transaction. Either the edit and the full sweep commit together
// or neither does.
func (s *ProgramService) UpdateProgram(ctx context.Context, input *UpdateProgramInput) (*entity.Program, error) {
	var program *entity.Program

	err := s.uow.Do(ctx, func(r repository.TxRepos) error {
		var err error
		program, err = r.Programs.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if program == nil {
			return apperror.NewNotFoundError("Program")
		}

		if input.Name != nil {
			program.Name = *input.Name
		}
		if input.Type != nil {
			program.Type = *input.Type
		}
		if input.DurationDays != nil {
			program.DurationDays = *input.DurationDays
		}
		if input.Cities != nil {
			program.Cities = input.Cities
		}
		if input.Packages != nil {
			program.Packages = input.Packages
		}

		if err := validateCatalog(program.Type, program.Cities, program.Packages); err != nil {
			return err
		}

		if err := r.Programs.Update(ctx, program); err != nil {
			return err
		}

		_, err = s.reconciler.Run(ctx, r, program.ID, ReasonCatalogChanged)
		return err
	})
	if err != nil {
		return nil, err
	}

	return program, nil
}

// DeleteProgram deletes a program along with its pricing and override
func (s *ProgramService) DeleteProgram(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(r repository.TxRepos) error {
		program, err := r.Programs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if program == nil {
			return apperror.NewNotFoundError("Program")
		}

		bookings, err := r.Bookings.ListByProgramID(ctx, id)
		if err != nil {
			return err
		}
		if len(bookings) > 0 {
			return apperror.NewConflictError("Program has bookings and cannot be deleted")
		}

		if err := r.Pricing.Delete(ctx, id); err != nil {
			return err
		}
		if err := r.Costs.Delete(ctx, id); err != nil {
			return err
		}
		return r.Programs.Delete(ctx, id)
	})
}

func validateCatalog(programType enum.ProgramType, cities []entity.ProgramCity, packages []entity.ProgramPackage) error {
	var fieldErrors []apperror.FieldError

	if !programType.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "type", Message: "unknown program type"})
	}

	seen := make(map[string]bool, len(cities))
	for _, city := range cities {
		if city.Name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cities", Message: "city name is required"})
			continue
		}
		if seen[city.Name] {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cities", Message: "duplicate city " + city.Name})
		}
		seen[city.Name] = true
		if city.Nights < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cities", Message: "nights cannot be negative for " + city.Name})
		}
	}

	for _, pkg := range packages {
		if pkg.Name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "packages", Message: "package name is required"})
			continue
		}
		for city := range pkg.Hotels {
			if !seen[city] {
				fieldErrors = append(fieldErrors, apperror.FieldError{Field: "packages", Message: pkg.Name + " references unknown city " + city})
			}
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
