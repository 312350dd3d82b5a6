// Package playerok provides types, interfaces, and helpers for working with
// the Playerok marketplace GraphQL API.
//
// # Overview
//
// The playerok package defines the entities (User, Chat, Deal, Item, MyItem,
// Game and the game category metadata) and the interfaces of the resource
// clients that fetch them. A concrete implementation is provided by the
// playerokclient package, which wires configuration, transport, and the
// session token. Most consumers import playerokclient to build a Client and
// then use the interfaces defined here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/playerok-client/pkg/playerok"
//	  "github.com/fivetwenty-io/playerok-client/pkg/playerokclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := playerokclient.New(ctx, &playerok.Config{AccessToken: "..."})
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close(ctx)
//
//	  chats, err := cli.Chats().List(ctx, &playerok.ChatListOptions{Status: playerok.ChatStatusNew})
//	  if err != nil { log.Fatal(err) }
//	  _ = chats
//	}
//
// # Identity map
//
// With Config.UseIdentityMap set, a session keeps one instance per entity
// id. Looking the same chat up twice yields the same pointer, and a list
// call that returns a cached id updates that instance in place of a new one.
// Pass WithForceRefresh to bypass the cache for one lookup.
//
// # Pagination
//
// Every collection is exposed twice: List fetches up to a limit, and Iter
// returns a lazy PaginationIterator that pulls pages on demand. Iterators
// also range over Seq:
//
//	for deal, err := range cli.Deals().Iter(ctx, nil).Seq() {
//	  if err != nil { return err }
//	  fmt.Println(deal.ID())
//	}
//
// # Errors
//
// Failures are classified by IsUnauthorized, IsNotFound, IsUpstream,
// IsNetwork, IsInvalidArgument and IsClientNotAttached. Entities outlive
// their session: after Client.Close their fields stay readable while every
// method that needs the network fails with ErrClientNotAttached.
package playerok
