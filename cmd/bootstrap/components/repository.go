package components

import (
	repo_impl "stayhub/internal/infra/repository"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewStaffRepository,
			fx.As(new(usecase.StaffRepository)),
		),
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
			fx.As(new(queries.ReservationReadStore)),
			fx.As(new(queries.ConflictReader)),
		),
		fx.Annotate(
			repo_impl.NewRoomRepository,
			fx.As(new(commands.RoomRepository)),
			fx.As(new(queries.RoomCountReader)),
		),
		fx.Annotate(
			repo_impl.NewRoomTypeRepository,
			fx.As(new(commands.RoomTypeRepository)),
			fx.As(new(queries.CalendarReader)),
		),
		fx.Annotate(
			repo_impl.NewRuleRepository,
			fx.As(new(commands.RuleRepository)),
			fx.As(new(queries.RuleReadStore)),
			fx.As(new(queries.RuleReader)),
		),
	),
)
