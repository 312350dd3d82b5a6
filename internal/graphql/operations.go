package graphql

// Operation is a named GraphQL document. The name doubles as the key for a
// persisted-query hash.
type Operation struct {
	Name  string
	Query string
}

// Variables are the variables of one operation call.
type Variables map[string]interface{}

// Pagination builds the connection arguments shared by every list operation.
// An empty cursor requests the first page.
func Pagination(first int, after string) map[string]interface{} {
	pagination := map[string]interface{}{"first": first, "after": nil}
	if after != "" {
		pagination["after"] = after
	}

	return pagination
}

const fileFragment = `
fragment File on File {
  id
  url
  filename
  mime
  __typename
}`

const pageInfoFragment = `
fragment PageInfo on PageInfo {
  startCursor
  endCursor
  hasPreviousPage
  hasNextPage
  __typename
}`

const userProfileFragment = `
fragment UserProfile on UserFragment {
  id
  username
  role
  avatarURL
  isOnline
  isBlocked
  rating
  testimonialCounter
  createdAt
  __typename
}`

const chatMessageFragment = `
fragment ChatMessage on ChatMessage {
  id
  text
  createdAt
  isRead
  user {
    id
    __typename
  }
  file {
    ...File
  }
  __typename
}` + fileFragment

const dealFragment = `
fragment Deal on ItemDeal {
  id
  status
  direction
  user {
    id
    __typename
  }
  chat {
    id
    __typename
  }
  item {
    id
    __typename
  }
  __typename
}`

const chatFragment = `
fragment Chat on Chat {
  id
  type
  status
  unreadMessagesCounter
  participants {
    id
    username
    __typename
  }
  deals {
    ...Deal
  }
  __typename
}` + dealFragment

const itemFragment = `
fragment Item on Item {
  id
  slug
  name
  description
  price
  rawPrice
  status
  priority
  priorityPosition
  game {
    id
    __typename
  }
  category {
    id
    __typename
  }
  user {
    ...UserProfile
  }
  attachments {
    ...File
  }
  ... on MyItem {
    prevPrice
    priorityPrice
    isEditable
    buyer {
      ...UserProfile
    }
  }
  __typename
}` + userProfileFragment + fileFragment

const gameFragment = `
fragment Game on Game {
  id
  slug
  name
  type
  createdAt
  logo {
    ...File
  }
  banner {
    ...File
  }
  categories {
    id
    slug
    name
    gameId
    __typename
  }
  __typename
}` + fileFragment

// Account operations.
var (
	OpViewer = Operation{Name: "viewer", Query: `query viewer {
  viewer {
    id
    username
    email
    role
    hasFrozenBalance
    supportChatId
    systemChatId
    unreadChatsCounter
    isBlocked
    isFundsProtectionActive
    createdAt
    lastItemCreatedAt
    hasConfirmedPhoneNumber
    canPublishItems
    profile {
      id
      avatarURL
      testimonialCounter
      __typename
    }
    __typename
  }
}`}

	OpUser = Operation{Name: "user", Query: `query user($id: UUID, $username: String, $hasSupportAccess: Boolean = false) {
  user(id: $id, username: $username, hasSupportAccess: $hasSupportAccess) {
    ... on User {
      id
      username
      profile {
        ...UserProfile
        email
        isVerified
        hasFrozenBalance
        hasEnabledNotifications
        supportChatId
        systemChatId
        balance {
          id
          value
          available
          frozen
          pendingIncome
          withdrawable
          __typename
        }
        stats {
          items {
            total
            finished
            __typename
          }
          deals {
            incoming {
              total
              finished
              __typename
            }
            outgoing {
              total
              finished
              __typename
            }
            __typename
          }
          __typename
        }
      }
    }
    ... on UserFragment {
      ...UserProfile
    }
    __typename
  }
}` + userProfileFragment}
)

// Chat operations.
var (
	OpChats = Operation{Name: "chats", Query: `query chats($pagination: Pagination, $filter: ChatFilter) {
  chats(pagination: $pagination, filter: $filter) {
    edges {
      node {
        ...Chat
      }
      cursor
      __typename
    }
    pageInfo {
      ...PageInfo
    }
    totalCount
    __typename
  }
}` + chatFragment + pageInfoFragment}

	OpChat = Operation{Name: "chat", Query: `query chat($id: UUID!) {
  chat(id: $id) {
    ...Chat
  }
}` + chatFragment}

	OpChatMessages = Operation{Name: "chatMessages", Query: `query chatMessages($pagination: Pagination, $filter: ChatMessageFilter!) {
  chatMessages(pagination: $pagination, filter: $filter) {
    edges {
      node {
        ...ChatMessage
      }
      cursor
      __typename
    }
    pageInfo {
      ...PageInfo
    }
    totalCount
    __typename
  }
}` + chatMessageFragment + pageInfoFragment}

	OpCreateChatMessage = Operation{Name: "createChatMessage", Query: `mutation createChatMessage($input: CreateChatMessageInput!, $file: Upload) {
  createChatMessage(input: $input, file: $file) {
    ...ChatMessage
  }
}` + chatMessageFragment}

	OpMarkChatAsRead = Operation{Name: "markChatAsRead", Query: `mutation markChatAsRead($input: MarkChatAsReadInput!) {
  markChatAsRead(input: $input) {
    id
    unreadMessagesCounter
    __typename
  }
}`}
)

// Deal operations.
var (
	OpDeals = Operation{Name: "deals", Query: `query deals($pagination: Pagination, $filter: ItemDealFilter!) {
  deals(pagination: $pagination, filter: $filter) {
    edges {
      node {
        ...Deal
      }
      cursor
      __typename
    }
    pageInfo {
      ...PageInfo
    }
    totalCount
    __typename
  }
}` + dealFragment + pageInfoFragment}

	OpDeal = Operation{Name: "deal", Query: `query deal($id: UUID!) {
  deal(id: $id) {
    ...Deal
  }
}` + dealFragment}

	OpUpdateDeal = Operation{Name: "updateDeal", Query: `mutation updateDeal($input: UpdateItemDealInput!) {
  updateDeal(input: $input) {
    ...Deal
  }
}` + dealFragment}
)

// Item operations.
var (
	OpItems = Operation{Name: "items", Query: `query items($pagination: Pagination, $filter: ItemFilter, $sort: ItemSort) {
  items(pagination: $pagination, filter: $filter, sort: $sort) {
    edges {
      node {
        ...Item
      }
      cursor
      __typename
    }
    pageInfo {
      ...PageInfo
    }
    totalCount
    __typename
  }
}` + itemFragment + pageInfoFragment}

	OpItem = Operation{Name: "item", Query: `query item($id: UUID, $slug: String, $hasSupportAccess: Boolean = false, $showForbiddenImage: Boolean = true) {
  item(id: $id, slug: $slug, hasSupportAccess: $hasSupportAccess, showForbiddenImage: $showForbiddenImage) {
    ...Item
  }
}` + itemFragment}

	OpCreateItem = Operation{Name: "createItem", Query: `mutation createItem($input: CreateItemInput!, $attachments: [Upload!]) {
  createItem(input: $input, attachments: $attachments) {
    ...Item
  }
}` + itemFragment}

	OpUpdateItem = Operation{Name: "updateItem", Query: `mutation updateItem($input: UpdateItemInput!, $addedAttachments: [Upload!]) {
  updateItem(input: $input, addedAttachments: $addedAttachments) {
    ...Item
  }
}` + itemFragment}

	OpRemoveItem = Operation{Name: "removeItem", Query: `mutation removeItem($id: UUID!) {
  removeItem(id: $id) {
    id
    __typename
  }
}`}

	OpPublishItem = Operation{Name: "publishItem", Query: `mutation publishItem($input: PublishItemInput!) {
  publishItem(input: $input) {
    ...Item
  }
}` + itemFragment}

	OpIncreaseItemPriorityStatus = Operation{Name: "increaseItemPriorityStatus", Query: `mutation increaseItemPriorityStatus($input: PublishItemInput!) {
  increaseItemPriorityStatus(input: $input) {
    ...Item
  }
}` + itemFragment}

	OpItemPriorityStatuses = Operation{Name: "itemPriorityStatuses", Query: `query itemPriorityStatuses($itemId: UUID!, $price: Int!) {
  itemPriorityStatuses(itemId: $itemId, price: $price) {
    id
    price
    name
    type
    period
    __typename
  }
}`}
)

// Game catalogue operations.
var (
	OpGames = Operation{Name: "games", Query: `query games($pagination: Pagination, $filter: GameFilter) {
  games(pagination: $pagination, filter: $filter) {
    edges {
      node {
        ...Game
      }
      cursor
      __typename
    }
    pageInfo {
      ...PageInfo
    }
    totalCount
    __typename
  }
}` + gameFragment + pageInfoFragment}

	OpGame = Operation{Name: "GamePage", Query: `query GamePage($id: UUID, $slug: String) {
  game(id: $id, slug: $slug) {
    ...Game
  }
}` + gameFragment}

	OpGameCategory = Operation{Name: "GamePageCategory", Query: `query GamePageCategory($id: UUID, $gameId: UUID, $slug: String) {
  gameCategory(id: $id, gameId: $gameId, slug: $slug) {
    id
    slug
    name
    gameId
    __typename
  }
}`}

	OpGameCategoryAgreements = Operation{Name: "gameCategoryAgreements", Query: `query gameCategoryAgreements($pagination: Pagination, $filter: GameCategoryAgreementFilter!) {
  gameCategoryAgreements(pagination: $pagination, filter: $filter) {
    edges {
      node {
        id
        description
        iconType
        sequence
        __typename
      }
      cursor
      __typename
    }
    pageInfo {
      ...PageInfo
    }
    totalCount
    __typename
  }
}` + pageInfoFragment}

	OpAcceptGameCategoryAgreement = Operation{Name: "acceptGameCategoryAgreement", Query: `mutation acceptGameCategoryAgreement($input: AcceptGameCategoryAgreementInput!) {
  acceptGameCategoryAgreement(input: $input) {
    id
    __typename
  }
}`}

	OpGameCategoryObtainingTypes = Operation{Name: "gameCategoryObtainingTypes", Query: `query gameCategoryObtainingTypes($pagination: Pagination, $filter: GameCategoryObtainingTypeFilter!) {
  gameCategoryObtainingTypes(pagination: $pagination, filter: $filter) {
    edges {
      node {
        id
        name
        description
        gameCategoryId
        sequence
        __typename
      }
      cursor
      __typename
    }
    pageInfo {
      ...PageInfo
    }
    totalCount
    __typename
  }
}` + pageInfoFragment}

	OpGameCategoryInstructions = Operation{Name: "gameCategoryInstructions", Query: `query gameCategoryInstructions($pagination: Pagination, $filter: GameCategoryInstructionFilter!) {
  gameCategoryInstructions(pagination: $pagination, filter: $filter) {
    edges {
      node {
        id
        text
        __typename
      }
      cursor
      __typename
    }
    pageInfo {
      ...PageInfo
    }
    totalCount
    __typename
  }
}` + pageInfoFragment}

	OpGameCategoryDataFields = Operation{Name: "gameCategoryDataFields", Query: `query gameCategoryDataFields($pagination: Pagination, $filter: GameCategoryDataFieldFilter!) {
  gameCategoryDataFields(pagination: $pagination, filter: $filter) {
    edges {
      node {
        id
        label
        type
        inputType
        copyable
        hidden
        required
        value
        __typename
      }
      cursor
      __typename
    }
    pageInfo {
      ...PageInfo
    }
    totalCount
    __typename
  }
}` + pageInfoFragment}

	OpGameCategoryOptions = Operation{Name: "gameCategoryOptions", Query: `query gameCategoryOptions($gameCategoryId: UUID!) {
  gameCategoryOptions(gameCategoryId: $gameCategoryId) {
    id
    group
    label
    type
    field
    value
    valueRangeLimit {
      min
      max
      __typename
    }
    __typename
  }
}`}
)
