package command

import (
	"fmt"

	"github.com/gridmud/gridmud/internal/engine"
	"github.com/gridmud/gridmud/internal/listener"
	"github.com/gridmud/gridmud/internal/messaging"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Create the nats server
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Build the world
	gameWorld, err := cfg.World.BuildWorld()
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	// Create the world engine
	eng := engine.New(gameWorld, cfg.Screens.BuildLoader(), messaging.NewPublisher(natsServer))

	// Create the connection manager feeding the engine queues
	cm := listener.NewConnectionManager(eng.CommandQueue(), eng.DataQueue())

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	// Create a worker list
	return service.WorkerList{
		"nats":      natsServer,
		"engine":    eng,
		"listeners": &listeners,
	}, nil
}
