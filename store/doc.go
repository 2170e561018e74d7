// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store loads the initiative dataset the analyzers run on.

# Sources

Two implementations of Source exist:

  - FileStore: a JSON array of initiatives on disk
  - SQLStore: the initiative table in sqlite or PostgreSQL

Both return initiatives in dataset order. SQLStore also implements
Importer, so the API can accept new initiatives, and Finder, which looks
up one initiative by ID (ErrNotFound when absent).

# JSON Format

	[
	  {
	    "id": "122/000045",
	    "title": "Housing Act",
	    "status": "Approved",
	    "author": "Government",
	    "voting": {
	      "exists": true, "yes": 180, "no": 160, "abstentions": 5,
	      "result": {
	        "totals": {"favor": 180, "against": 160, "abstain": 5, "noVoteCount": 5},
	        "desglose": {"yes": {"PSOE": 120}, "no": {"PP": 137}}
	      },
	      "noVoteList": [{"id": "d17", "displayName": "Ana Pérez", "partyOrGroup": "GP Mixed"}]
	    }
	  }
	]

# Validation

ReadJSON checks input against the embedded initiatives.schema.json
(JSON Schema draft 2020-12) before decoding, so a count sent as a string
or a fraction is rejected with the failing path. Unknown fields pass, and
null is accepted for any scalar so it decodes to the zero value.
*/
package store
