package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

func gameData(id string) map[string]interface{} {
	return map[string]interface{}{
		"id":        id,
		"slug":      "slug-" + id,
		"name":      "Game " + id,
		"type":      "GAME",
		"createdAt": "2023-01-01T00:00:00Z",
		"logo":      map[string]interface{}{"id": "logo-" + id, "url": "https://cdn.example.com/" + id + ".png"},
		"categories": []map[string]interface{}{
			{"id": "cat-1", "slug": "accounts", "name": "Accounts"},
			{"id": "cat-2", "slug": "gold", "name": "Gold", "gameId": id},
		},
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestGamesClient_Get(t *testing.T) {
	t.Parallel()

	t.Run("with categories", func(t *testing.T) {
		t.Parallel()

		fake, client := newFakeSession(t)
		fake.handle("GamePage", func(call graphQLCall) interface{} {
			assert.Equal(t, "game-1", call.Variables["id"])

			return map[string]interface{}{"game": gameData("game-1")}
		})

		game, err := client.Games().Get(context.Background(), playerok.GameByID("game-1"))
		require.NoError(t, err)
		require.NotNil(t, game)
		assert.Equal(t, playerok.GameTypeGame, game.Type)
		require.NotNil(t, game.Logo)
		assert.Equal(t, "logo-game-1", game.Logo.ID)
		require.Len(t, game.Categories, 2)
		assert.Equal(t, "game-1", game.Categories[0].GameID)

		category := game.Category("cat-2")
		require.NotNil(t, category)
		assert.Equal(t, "gold", category.Slug)
		assert.Nil(t, game.Category("cat-9"))
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		t.Parallel()

		fake, client := newFakeSession(t)
		fake.respond("GamePage", map[string]interface{}{"game": nil})

		_, err := client.Games().Get(context.Background(), playerok.GameBySlug("nope"))
		assert.True(t, playerok.IsNotFound(err))
	})

	t.Run("catalogue keeps cached instances", func(t *testing.T) {
		t.Parallel()

		fake, client := newFakeSession(t)
		fake.respond("GamePage", map[string]interface{}{"game": gameData("game-1")})
		fake.handle("games", func(call graphQLCall) interface{} {
			assert.Equal(t, "APPLICATION", filterOf(call)["type"])

			return map[string]interface{}{"games": connection([]map[string]interface{}{
				gameData("game-1"),
				gameData("game-2"),
			}, false, "")}
		})

		game, err := client.Games().Get(context.Background(), playerok.GameByID("game-1"))
		require.NoError(t, err)

		games, err := client.Games().List(context.Background(), &playerok.GameListOptions{Type: playerok.GameTypeApplication})
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Same(t, game, games[0])
	})
}

func TestGamesClient_GetCategory(t *testing.T) {
	t.Parallel()

	fake, client := newFakeSession(t)
	fake.handle("GamePageCategory", func(call graphQLCall) interface{} {
		assert.Nil(t, call.Variables["id"])
		assert.Equal(t, "game-1", call.Variables["gameId"])
		assert.Equal(t, "gold", call.Variables["slug"])

		return map[string]interface{}{"gameCategory": map[string]interface{}{"id": "cat-2", "slug": "gold", "name": "Gold"}}
	})

	category, err := client.Games().GetCategory(context.Background(), playerok.CategoryBySlug("game-1", "gold"))
	require.NoError(t, err)
	assert.Equal(t, "cat-2", category.ID())
	assert.Equal(t, "game-1", category.GameID)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestGamesClient_Agreements(t *testing.T) {
	t.Parallel()

	t.Run("scoped to the category", func(t *testing.T) {
		t.Parallel()

		fake, client := newFakeSession(t)
		fake.handle("gameCategoryAgreements", func(call graphQLCall) interface{} {
			filter := filterOf(call)
			assert.Equal(t, "cat-1", filter["gameCategoryId"])
			assert.Equal(t, "ot-1", filter["gameCategoryObtainingTypeId"])
			assert.Equal(t, testMeID, filter["userId"])

			return map[string]interface{}{"gameCategoryAgreements": connection([]map[string]interface{}{
				{"id": "agr-1", "description": "No scams", "iconType": "RULE", "sequence": 1},
			}, false, "")}
		})
		fake.handle("acceptGameCategoryAgreement", func(call graphQLCall) interface{} {
			assert.Equal(t, "agr-1", inputOf(call)["agreementId"])

			return map[string]interface{}{"acceptGameCategoryAgreement": map[string]interface{}{"id": "agr-1"}}
		})

		agreements, err := client.Games().Agreements(context.Background(), &playerok.AgreementListOptions{
			CategoryID:      "cat-1",
			ObtainingTypeID: "ot-1",
		})
		require.NoError(t, err)
		require.Len(t, agreements, 1)
		assert.Equal(t, "cat-1", agreements[0].CategoryID)
		assert.Equal(t, "ot-1", agreements[0].ObtainingTypeID)

		accepted, err := agreements[0].Accept(context.Background())
		require.NoError(t, err)
		assert.True(t, accepted)
	})

	t.Run("requires a category", func(t *testing.T) {
		t.Parallel()

		fake, client := newFakeSession(t)

		_, err := client.Games().Agreements(context.Background(), &playerok.AgreementListOptions{})
		assert.True(t, playerok.IsInvalidArgument(err))

		it := client.Games().IterAgreements(context.Background(), nil)
		assert.False(t, it.HasNext())
		assert.True(t, playerok.IsInvalidArgument(it.Err()))

		assert.Empty(t, fake.operations())
	})
}

func TestGamesClient_ObtainingTypes(t *testing.T) {
	t.Parallel()

	fake, client := newFakeSession(t)
	fake.handle("gameCategoryObtainingTypes", func(call graphQLCall) interface{} {
		assert.Equal(t, "cat-1", filterOf(call)["gameCategoryId"])

		return map[string]interface{}{"gameCategoryObtainingTypes": connection([]map[string]interface{}{
			{"id": "ot-1", "name": "Login", "sequence": 1},
		}, false, "")}
	})
	fake.handle("gameCategoryInstructions", func(call graphQLCall) interface{} {
		filter := filterOf(call)
		assert.Equal(t, "cat-1", filter["gameCategoryId"])
		assert.Equal(t, "ot-1", filter["gameCategoryObtainingTypeId"])

		return map[string]interface{}{"gameCategoryInstructions": connection([]map[string]interface{}{
			{"id": "ins-1", "text": "Send the login"},
		}, false, "")}
	})

	category := playerok.NewGameCategory(client, "cat-1")

	obtainingTypes, err := category.ObtainingTypes(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, obtainingTypes, 1)
	assert.Equal(t, "cat-1", obtainingTypes[0].CategoryID)
	assert.Equal(t, "Login", obtainingTypes[0].Name)

	instructions, err := obtainingTypes[0].Instructions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, instructions, 1)
	assert.Equal(t, &playerok.Instruction{
		ID:              "ins-1",
		Text:            "Send the login",
		CategoryID:      "cat-1",
		ObtainingTypeID: "ot-1",
	}, instructions[0])
}

func TestGamesClient_DataFields(t *testing.T) {
	t.Parallel()

	fake, client := newFakeSession(t)
	fake.handle("gameCategoryDataFields", func(call graphQLCall) interface{} {
		if cursorOf(call) == "" {
			return map[string]interface{}{"gameCategoryDataFields": connection([]map[string]interface{}{
				{"id": "f-1", "label": "Login", "type": "ITEM_DATA", "inputType": "INPUT", "required": true},
			}, true, "c1")}
		}

		return map[string]interface{}{"gameCategoryDataFields": connection([]map[string]interface{}{
			{"id": "f-2", "label": "Password", "type": "ITEM_DATA", "inputType": "INPUT", "hidden": true},
		}, false, "")}
	})

	fields, err := client.Games().DataFields(context.Background(), "cat-1", "ot-1")
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Login", fields[0].Name)
	assert.True(t, fields[0].Required)
	assert.True(t, fields[1].Hidden)
	assert.Len(t, fake.callsTo("gameCategoryDataFields"), 2)

	values := playerok.DataFieldValues(fields[0].SetValue("user"), fields[1])
	assert.Equal(t, map[string]string{"f-1": "user"}, values)
}

func TestGamesClient_Options(t *testing.T) {
	t.Parallel()

	fake, client := newFakeSession(t)
	fake.handle("gameCategoryOptions", func(call graphQLCall) interface{} {
		assert.Equal(t, "cat-1", call.Variables["gameCategoryId"])

		return map[string]interface{}{"gameCategoryOptions": []map[string]interface{}{
			{"id": "o-1", "group": "Server", "label": "Europe", "type": "SELECTOR", "field": "server", "value": "eu"},
			{"id": "o-2", "group": "Server", "label": "America", "type": "SELECTOR", "field": "server", "value": "na"},
			{"id": "o-3", "group": "Level", "type": "RANGE", "field": "level", "valueRangeLimit": map[string]interface{}{"min": 1, "max": 3}},
			{"id": "o-4", "group": "Extras", "type": "SWITCH", "field": "mail"},
		}}
	})

	options, err := client.Games().Options(context.Background(), "cat-1")
	require.NoError(t, err)
	require.Len(t, options, 3)

	assert.Equal(t, "server", options[0].Slug)
	assert.Equal(t, []playerok.OptionValue{{Name: "Europe", Value: "eu"}, {Name: "America", Value: "na"}}, options[0].Values)

	assert.Equal(t, []playerok.OptionValue{{Name: "0", Value: "0"}, {Name: "1", Value: "1"}, {Name: "2", Value: "2"}}, options[1].Values)

	assert.Equal(t, []playerok.OptionValue{{Name: "No", Value: "false"}, {Name: "Yes", Value: "true"}}, options[2].Values)

	require.NoError(t, options[0].Select("na"))
	require.NoError(t, options[2].SelectBool(true))
	require.Error(t, options[1].Select("7"))

	assert.Equal(t, map[string]string{"server": "na", "mail": "true"}, playerok.OptionValues(options...))
}
