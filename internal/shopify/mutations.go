package shopify

// CartCreateMutation creates an empty cart. The returned cart ID becomes the
// session's cart identifier.
const CartCreateMutation = `
mutation cartCreate {
  cartCreate {
    cart {
      ...cart
    }
  }
}
` + cartFragment

// CartLinesAddMutation appends merchandise to a cart. Shopify merges a line
// for merchandise already present by summing quantities.
const CartLinesAddMutation = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {
      ...cart
    }
  }
}
` + cartFragment

// CartLinesRemoveMutation removes lines by ID. Unknown line IDs are a no-op
// on the Shopify side.
const CartLinesRemoveMutation = `
mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {
      ...cart
    }
  }
}
` + cartFragment

// CartLinesUpdateMutation sets line quantities. Shopify rejects quantity 0;
// callers must convert zero-quantity updates into removals first.
const CartLinesUpdateMutation = `
mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart {
      ...cart
    }
  }
}
` + cartFragment
