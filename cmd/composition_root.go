package cmd

import (
	"log/slog"
	"os"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/redis/routecache"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	routeCache *routecache.Cache
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *goredis.Client) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		routeCache: routecache.New(redisClient),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateRailTripCommandHandler() commands.CreateRailTripCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRailTripCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateRoadRunCommandHandler() commands.CreateRoadRunCommandHandler {
	var f commands.RunUoWFactory = FuncRunUoWFactory(func() commands.RunUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRoadRunCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelRoadRunCommandHandler() commands.CancelRoadRunCommandHandler {
	var f commands.RunUoWFactory = FuncRunUoWFactory(func() commands.RunUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelRoadRunCommandHandler(f)
}

func (c *CompositionRoot) CreateAllocateRailCommandHandler() commands.AllocateRailCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateRailCommandHandler(f)
}

func (c *CompositionRoot) CreateAllocateRoadCommandHandler() commands.AllocateRoadCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateRoadCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelAllocationCommandHandler() commands.CancelAllocationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelAllocationCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceTransitCommandHandler() commands.AdvanceTransitCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceTransitCommandHandler(f)
}

func (c *CompositionRoot) CreateCandidateRailTripsQueryHandler() queries.CandidateRailTripsQueryHandler {
	return queries.NewCandidateRailTripsQueryHandler(c.gormDB, c.routeCache)
}

func (c *CompositionRoot) CreateCandidateRoadRunsQueryHandler() queries.CandidateRoadRunsQueryHandler {
	return queries.NewCandidateRoadRunsQueryHandler(c.gormDB, c.routeCache)
}

func (c *CompositionRoot) CreateGetUnallocatedOrdersQueryHandler() queries.GetUnallocatedOrdersQueryHandler {
	return queries.NewGetUnallocatedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateConfirmOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCreateRailTripCommandHandler(),
		c.CreateCreateRoadRunCommandHandler(),
		c.CreateCancelRoadRunCommandHandler(),
		c.CreateAllocateRailCommandHandler(),
		c.CreateAllocateRoadCommandHandler(),
		c.CreateCancelAllocationCommandHandler(),
		c.CreateCandidateRailTripsQueryHandler(),
		c.CreateCandidateRoadRunsQueryHandler(),
		c.CreateGetUnallocatedOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAdvanceTransitCommandHandler(),
		c.config.TransitJobSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}

type FuncRunUoWFactory func() commands.RunUoW

func (f FuncRunUoWFactory) Create() commands.RunUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
