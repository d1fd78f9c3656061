package shopify

// Shared selection set for product payloads. Variants and images come back as
// connections and are flattened during reshaping.
const productFragment = `
fragment product on Product {
  id
  handle
  availableForSale
  title
  description
  descriptionHtml
  options {
    id
    name
    values
  }
  priceRange {
    maxVariantPrice {
      amount
      currencyCode
    }
    minVariantPrice {
      amount
      currencyCode
    }
  }
  variants(first: 250) {
    edges {
      node {
        id
        title
        availableForSale
        selectedOptions {
          name
          value
        }
        price {
          amount
          currencyCode
        }
      }
    }
  }
  featuredImage {
    url
    altText
    width
    height
  }
  images(first: 20) {
    edges {
      node {
        url
        altText
        width
        height
      }
    }
  }
  seo {
    title
    description
  }
  tags
  updatedAt
}
`

// ProductQuery fetches a single product by handle.
const ProductQuery = `
query getProduct($handle: String!) {
  product(handle: $handle) {
    ...product
  }
}
` + productFragment

// ProductsQuery fetches products, optionally filtered and sorted.
const ProductsQuery = `
query getProducts($sortKey: ProductSortKeys, $reverse: Boolean, $query: String) {
  products(sortKey: $sortKey, reverse: $reverse, query: $query, first: 100) {
    edges {
      node {
        ...product
      }
    }
  }
}
` + productFragment

// ProductRecommendationsQuery fetches related products. The response is a
// plain list, not a connection.
const ProductRecommendationsQuery = `
query getProductRecommendations($productId: ID!) {
  productRecommendations(productId: $productId) {
    ...product
  }
}
` + productFragment

const collectionFragment = `
fragment collection on Collection {
  id
  handle
  title
  description
  image {
    url
    altText
    width
    height
  }
}
`

// CollectionQuery fetches a single collection by handle.
const CollectionQuery = `
query getCollection($handle: String!) {
  collection(handle: $handle) {
    ...collection
  }
}
` + collectionFragment

// CollectionsQuery fetches all collections.
const CollectionsQuery = `
query getCollections {
  collections(first: 100) {
    edges {
      node {
        ...collection
      }
    }
  }
}
` + collectionFragment

// CollectionProductsQuery fetches a collection's products with sorting.
const CollectionProductsQuery = `
query getCollectionProducts($handle: String!, $sortKey: ProductCollectionSortKeys, $reverse: Boolean) {
  collection(handle: $handle) {
    products(sortKey: $sortKey, reverse: $reverse, first: 100) {
      edges {
        node {
          ...product
        }
      }
    }
  }
}
` + productFragment

// MenuQuery fetches a navigation menu as a flat item list.
const MenuQuery = `
query getMenu($handle: String!) {
  menu(handle: $handle) {
    items {
      title
      url
    }
  }
}
`

// PageQuery fetches a content page by handle.
const PageQuery = `
query getPage($handle: String!) {
  page(handle: $handle) {
    id
    title
    handle
    body
    bodySummary
  }
}
`

// PagesQuery fetches all content pages.
const PagesQuery = `
query getPages {
  pages(first: 100) {
    edges {
      node {
        id
        title
        handle
        body
        bodySummary
        seo {
          title
          description
        }
        createdAt
        updatedAt
      }
    }
  }
}
`

// Shared selection set for cart payloads.
const cartFragment = `
fragment cart on Cart {
  id
  checkoutUrl
  cost {
    subtotalAmount {
      amount
      currencyCode
    }
    totalAmount {
      amount
      currencyCode
    }
    totalTaxAmount {
      amount
      currencyCode
    }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        cost {
          totalAmount {
            amount
            currencyCode
          }
        }
        merchandise {
          ... on ProductVariant {
            id
            title
            selectedOptions {
              name
              value
            }
            product {
              id
              handle
              title
              featuredImage {
                url
                altText
                width
                height
              }
            }
          }
        }
      }
    }
  }
  totalQuantity
}
`

// CartQuery fetches a cart by its server-issued identifier.
const CartQuery = `
query getCart($cartId: ID!) {
  cart(id: $cartId) {
    ...cart
  }
}
` + cartFragment
