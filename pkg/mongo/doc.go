// Package mongo provides the document-store connection factory.
//
// The module reads user, article and comment documents and owns the
// notifications collection; all of that traffic goes through a client built
// here. Connection parameters live in Config and are populated from
// environment variables via the config package.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
package mongo
