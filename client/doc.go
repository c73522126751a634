/*
Package client implements common operations against the GLPI REST API. These focus on
session management, item create, read, update, and destroy operations, the search
engine, and document transfer.

Below briefly illustrates a simple cycle of creating a client and using it to perform
a few operations. The first step is to create a new client and open a session.

  var conf = client.Config{
    Remote:    "https://glpi.example.com",
    AppToken:  "...",
    UserToken: "...",
  }

  c, err := client.NewClient(conf)
  // err handling
  err = c.InitSession()
  defer c.KillSession()

The client can then be used to perform API operations.

  computer, err := c.GetItem("Computer", 71, protocol.GetItemRequest{WithSoftwares: true})

  results, err := c.SearchItems("Monitor", protocol.SearchRequest{
    Criteria: []protocol.SearchCriterion{
      {Field: 31, SearchType: protocol.SearchEquals, Value: "1"},
    },
  })

Most methods require an active session. Methods that return several items record the
pagination window of the last call, retrievable with ResponseRange.
*/
package client
