package sqlinline

// QInsertPostAssets inserts a batch of assets in one statement so a render
// pass records either all of its files or none.
const QInsertPostAssets = `--sql 9751acf6-e2b4-40a8-82d4-580638f82630
insert into post_assets(
  id,
  post_id,
  file_name,
  file_url,
  file_type,
  version,
  created_at
)
select u.id, u.post_id, u.file_name, u.file_url, u.file_type, u.version, now()
from unnest(
  $1::uuid[],
  $2::text[],
  $3::text[],
  $4::text[],
  $5::text[],
  $6::int[]
) as u(id, post_id, file_name, file_url, file_type, version)
returning id::text, created_at;
`

const QListPostAssets = `--sql f9d0bb75-6d39-4fbe-b2bc-4790fa4a7fde
select id::text, post_id, file_name, file_url, file_type, version, created_at
from post_assets
where post_id = $1::text
order by created_at asc, file_name asc;
`
