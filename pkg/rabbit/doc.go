// Package rabbit provides the RabbitMQ connection factory for the durable
// side of event distribution.
//
// Domain events are published to a durable topic exchange partitioned by
// routing key (article.*, comment.*, notification.*); the exchange is declared
// idempotently on every startup.
//
//	var cfg rabbit.Config
//	config.MustLoad(&cfg)
//
//	conn, err := rabbit.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer conn.Close()
//
//	ch, err := rabbit.NewPublisherChannel(conn, cfg)
//	if err != nil {
//	    // handle error
//	}
//	defer ch.Close()
package rabbit
