// Package playerokclient is the entry point for building a Playerok
// marketplace session that implements the playerok.Client interface.
//
// New validates the configuration, resolves the authenticated user and
// returns a ready session. NewFromEnv does the same from PLAYEROK_*
// environment variables:
//
//	cli, err := playerokclient.NewFromEnv(ctx)
//	if err != nil { log.Fatal(err) }
//	defer cli.Close(ctx)
//
//	me, err := cli.Account().Me(ctx)
package playerokclient
