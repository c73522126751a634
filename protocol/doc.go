/*
Package protocol provides structures which represent requests to and returns from the
GLPI REST API.

Basics

The Item structure represents a single GLPI object of any itemtype (Computer, Ticket,
Software, ...) as returned by the API. Because the set of fields varies per itemtype,
Item is a dynamic map with typed accessors for the fields common to every table.

Objects that shape a request are suffixed with *Request; e.g. GetItemRequest or
SearchRequest. Request types know how to encode themselves as the bracketed query
parameters the API expects (criteria[0][field], searchText[name], ...).
*/
package protocol
